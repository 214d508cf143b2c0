// Package assets provides the stylesheets applied to Markdown slides.
//
// A theme is a single CSS file. Built-in themes are embedded at compile
// time; a themes directory on disk can add new themes or override built-in
// ones by name:
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - themes/*.css compiled into the binary
//	    ├── FilesystemLoader  - {dir}/{name}.css on disk
//	    └── Resolver          - directory first, embedded as fallback
//
// Theme styles target the .markdown-slide container that wraps rendered
// Markdown, so they never leak into HTML slides.
//
// # Security
//
// Theme names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies every path stays within its directory.
package assets
