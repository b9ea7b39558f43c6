// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}, false},
		{"ff0000", color.NRGBA{R: 255, A: 255}, false},
		{"#0F0", color.NRGBA{G: 255, A: 255}, false},
		{"#0000ffff", color.NRGBA{B: 255, A: 255}, false},
		{"#fff0", color.NRGBA{R: 255, G: 255, B: 255}, false},
		{" #000000 ", color.NRGBA{A: 255}, false},
		{"none", nil, false},
		{"Transparent", nil, false},
		{"", nil, true},
		{"#12", nil, true},
		{"#12345", nil, true},
		{"#gg0000", nil, true},
		{"red", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalColor(t *testing.T) {
	if got := canonicalColor("  #ABCdef "); got != "#abcdef" {
		t.Errorf("canonicalColor() = %q, want %q", got, "#abcdef")
	}
}
