package pptx

import (
	"encoding/xml"
	"fmt"
	"time"
)

// Effect names a slide transition effect.
type Effect string

// Supported transition effects.
const (
	EffectFade Effect = "fade"
	EffectPush Effect = "push"
)

// Direction is the travel direction of a push transition.
type Direction string

// Push directions.
const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// code returns the single-character ST_TransitionSideDirectionType value.
func (d Direction) code() (string, bool) {
	switch d {
	case DirectionLeft, "":
		return "l", true
	case DirectionRight:
		return "r", true
	case DirectionUp:
		return "u", true
	case DirectionDown:
		return "d", true
	}
	return "", false
}

// Speed is the ST_TransitionSpeed attribute value.
type Speed string

// SpeedMedium is the only speed this writer emits.
const SpeedMedium Speed = "med"

// Transition describes how a slide enters. Slides always advance on click;
// there is no auto-advance timer.
type Transition struct {
	Effect    Effect
	Direction Direction // push only; empty means left

	// Duration is informational. It is kept on the model but not serialized,
	// so viewers use their default timing for the chosen speed.
	Duration time.Duration
}

// Validate reports whether t names a known effect and, for push, a known direction.
func (t Transition) Validate() error {
	switch t.Effect {
	case EffectFade:
		return nil
	case EffectPush:
		if _, ok := t.Direction.code(); !ok {
			return fmt.Errorf("%w: push direction %q", ErrUnknownEffect, t.Direction)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownEffect, t.Effect)
}

// transitionNode is the p:transition child of a slide root.
type transitionNode struct {
	spec Transition
}

func (*transitionNode) Kind() NodeKind { return KindTransition }

type transitionXML struct {
	XMLName  xml.Name  `xml:"p:transition"`
	Speed    Speed     `xml:"spd,attr"`
	AdvClick int       `xml:"advClick,attr"`
	Fade     *struct{} `xml:"p:fade"`
	Push     *pushXML  `xml:"p:push"`
}

type pushXML struct {
	Dir string `xml:"dir,attr"`
}

func (n *transitionNode) xmlValue() any {
	v := transitionXML{Speed: SpeedMedium, AdvClick: 1}
	switch n.spec.Effect {
	case EffectFade:
		v.Fade = &struct{}{}
	case EffectPush:
		dir, _ := n.spec.Direction.code()
		v.Push = &pushXML{Dir: dir}
	}
	return v
}
