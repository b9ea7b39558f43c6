// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"fmt"
	"math"
	"strings"
)

// Anchor places a text label relative to its point. The zero value uses
// the explicit AnchorX, AnchorY offsets of the item.
type Anchor uint8

// Keyword anchors.
const (
	AnchorNone Anchor = iota
	AnchorTopLeft
	AnchorTop
	AnchorTopRight
	AnchorLeft
	AnchorCenter
	AnchorRight
	AnchorBottomLeft
	AnchorBottom
	AnchorBottomRight
)

var anchorNames = [...]string{
	AnchorNone:        "none",
	AnchorTopLeft:     "top-left",
	AnchorTop:         "top",
	AnchorTopRight:    "top-right",
	AnchorLeft:        "left",
	AnchorCenter:      "center",
	AnchorRight:       "right",
	AnchorBottomLeft:  "bottom-left",
	AnchorBottom:      "bottom",
	AnchorBottomRight: "bottom-right",
}

func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", a)
}

// ParseAnchor returns the anchor named s, such as "top-left" or "center".
// An empty string yields AnchorNone.
func ParseAnchor(s string) (Anchor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AnchorNone, nil
	}
	for i, name := range anchorNames {
		if name == s {
			return Anchor(i), nil
		}
	}
	return AnchorNone, fmt.Errorf("%w: unknown anchor %q", ErrInvalidStyle, s)
}

// Offset returns the rounded displacement of a w×h label from its
// baseline point. The label's top edge lies h above the baseline.
func (a Anchor) Offset(w, h float64) (dx, dy float64) {
	switch a {
	case AnchorTopLeft:
		dx, dy = 0, h
	case AnchorTop:
		dx, dy = -w/2, h
	case AnchorTopRight:
		dx, dy = -w, h
	case AnchorLeft:
		dx, dy = 0, h/2
	case AnchorCenter:
		dx, dy = -w/2, h/2
	case AnchorRight:
		dx, dy = -w, h/2
	case AnchorBottomLeft:
		dx, dy = 0, 0
	case AnchorBottom:
		dx, dy = -w/2, 0
	case AnchorBottomRight:
		dx, dy = -w, 0
	}
	return math.Round(dx), math.Round(dy)
}
