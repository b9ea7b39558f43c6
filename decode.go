// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"strings"

	// Formats accepted for marker icons.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/vincent-petithory/dataurl"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoder loads a marker icon from its source string. Decode may block;
// the scheduler waits for it before drawing the next item.
type Decoder interface {
	Decode(ctx context.Context, source string) (image.Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, source string) (image.Image, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(ctx context.Context, source string) (image.Image, error) {
	return f(ctx, source)
}

// FileDecoder decodes icons from files and from data URIs. PNG, JPEG, GIF,
// BMP, TIFF and WebP are recognized.
type FileDecoder struct {
	fsys fs.FS
}

// NewFileDecoder returns a decoder that opens sources in fsys. A nil fsys
// opens them as operating system paths.
func NewFileDecoder(fsys fs.FS) *FileDecoder {
	return &FileDecoder{fsys: fsys}
}

// Decode implements Decoder.
func (d *FileDecoder) Decode(ctx context.Context, source string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(source, "data:") {
		data, err := parseDataURI(source)
		if err != nil {
			return nil, err
		}
		return decodeImage(bytes.NewReader(data))
	}

	f, err := d.open(source)
	if err != nil {
		return nil, fmt.Errorf("gglayers: open icon: %w", err)
	}
	defer f.Close()

	img, err := decodeImage(f)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

func (d *FileDecoder) open(name string) (io.ReadCloser, error) {
	if d.fsys == nil {
		return os.Open(name)
	}
	return d.fsys.Open(name)
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("gglayers: decode icon: %w", err)
	}
	Logger().Debug("gglayers: icon decoded", "format", format, "bounds", img.Bounds())
	return img, nil
}

var errDataURI = errors.New("gglayers: malformed data URI")

// parseDataURI returns the payload of "data:[<mediatype>][;base64],<data>".
func parseDataURI(uri string) ([]byte, error) {
	du, err := dataurl.DecodeString(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errDataURI, err)
	}
	Logger().Debug("gglayers: data URI", "type", du.MediaType.ContentType(), "bytes", len(du.Data))
	return du.Data, nil
}
