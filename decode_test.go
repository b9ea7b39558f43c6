// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"

	"github.com/gogpu/gg"

	"github.com/gogpu/gglayers/scheduler"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestFileDecoderDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, 3, 5))

	img, err := NewFileDecoder(nil).Decode(context.Background(), uri)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 5 {
		t.Errorf("bounds = %v, want 3x5", b)
	}
}

func TestFileDecoderFS(t *testing.T) {
	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, image.NewRGBA(image.Rect(0, 0, 7, 2))); err != nil {
		t.Fatalf("bmp.Encode() error = %v", err)
	}
	fsys := fstest.MapFS{
		"icons/pin.png": {Data: encodePNG(t, 4, 4)},
		"icons/dot.bmp": {Data: bmpBuf.Bytes()},
		"icons/bad.png": {Data: []byte("not an image")},
	}
	d := NewFileDecoder(fsys)

	tests := []struct {
		name    string
		src     string
		w, h    int
		wantErr bool
	}{
		{"png", "icons/pin.png", 4, 4, false},
		{"bmp", "icons/dot.bmp", 7, 2, false},
		{"corrupt", "icons/bad.png", 0, 0, true},
		{"missing", "icons/none.png", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := d.Decode(context.Background(), tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Decode() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("bounds = %v, want %dx%d", b, tt.w, tt.h)
			}
		})
	}
}

func TestFileDecoderOSPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	if err := os.WriteFile(path, encodePNG(t, 2, 2), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := NewFileDecoder(nil).Decode(context.Background(), path); err != nil {
		t.Errorf("Decode() error = %v", err)
	}
}

func TestFileDecoderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFileDecoder(nil).Decode(ctx, "data:,x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Decode() error = %v, want context.Canceled", err)
	}
}

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{"data:text/plain;base64,aGVsbG8=", "hello", false},
		{"data:text/plain;charset=utf-8;base64,aGVsbG8=", "hello", false},
		{"data:,a%20b", "a b", false},
		{"data:;base64,!!!", "", true},
		{"data:no-comma", "", true},
		{"data:,%zz", "", true},
	}
	for _, tt := range tests {
		got, err := parseDataURI(tt.uri)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDataURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errDataURI) {
			t.Errorf("parseDataURI(%q) error = %v, want errDataURI", tt.uri, err)
		}
		if string(got) != tt.want {
			t.Errorf("parseDataURI(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestMarkerLayerDataURIIcon(t *testing.T) {
	host := scheduler.NewManualHost()
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, 6, 6))

	l := NewMarkerLayer(WithIdleHost(host))
	err := l.Configure(Config[MarkerItem]{
		Surface: newRecorder(),
		Extent:  Extent{Width: 50, Height: 50},
		Items:   []MarkerItem{{X: 10, Y: 10, Icon: uri}},
	})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	render(t, host, l)

	if got := l.FindByPosition(gg.Pt(15, 15)); len(got) != 1 {
		t.Errorf("FindByPosition() = %v, want the 6x6 marker", got)
	}
	if got := l.FindByPosition(gg.Pt(17, 15)); len(got) != 0 {
		t.Errorf("FindByPosition() = %v, want no hit past the icon", got)
	}
}

func TestAbbreviate(t *testing.T) {
	if got := abbreviate("pin.png"); got != "pin.png" {
		t.Errorf("abbreviate() = %q", got)
	}
	long := "data:image/png;base64," + string(bytes.Repeat([]byte("A"), 100))
	if got := abbreviate(long); len(got) != 51 {
		t.Errorf("len(abbreviate()) = %d, want 51", len(got))
	}
}
