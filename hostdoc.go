package html2pptx

// hostDocumentTemplate wraps a slide fragment so it fills the viewport
// exactly: no default margins, no flexible sizing, transparent background.
// Elements with class slide-container are forced to the full viewport.
const hostDocumentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
html, body {
  width: 100%;
  height: 100%;
  overflow: hidden;
  background-color: transparent;
}
.slide-container {
  width: 100% !important;
  height: 100% !important;
}
</style>
</head>
<body>`

const hostDocumentClose = `</body>
</html>`

// hostDocument returns fragment inside the host document. The fragment is
// inserted verbatim; it is trusted slide markup.
func hostDocument(fragment string) string {
	return hostDocumentTemplate + fragment + hostDocumentClose
}
