// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"errors"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
)

// ColorNone disables a fill or border.
const ColorNone = "none"

var errBadColor = errors.New("bad color")

// parseColor accepts "#rgb", "#rgba", "#rrggbb" and "#rrggbbaa" (the hash
// is optional) and ColorNone or "transparent", which yield nil.
func parseColor(s string) (color.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ColorNone, "transparent":
		return nil, nil
	}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return nil, errBadColor
	}
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return nil, errBadColor
		}
	}
	return gg.Hex(hex).Color(), nil
}
