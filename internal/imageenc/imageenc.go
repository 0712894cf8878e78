// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package imageenc encodes captured frames by MIME type.
package imageenc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"slices"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Supported MIME types.
const (
	PNG  = "image/png"
	JPEG = "image/jpeg"
	BMP  = "image/bmp"
	TIFF = "image/tiff"
)

// JPEGQuality is the quality used for image/jpeg.
const JPEGQuality = 92

// ErrUnsupportedFormat is returned when the MIME type has no encoder.
var ErrUnsupportedFormat = errors.New("imageenc: unsupported format")

type encoder func(w io.Writer, img image.Image) error

var encoders = map[string]encoder{
	PNG: png.Encode,
	JPEG: func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	},
	BMP: bmp.Encode,
	TIFF: func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

// aliases maps accepted spellings to their canonical MIME type.
var aliases = map[string]string{
	"png":            PNG,
	"jpeg":           JPEG,
	"jpg":            JPEG,
	"image/jpg":      JPEG,
	"bmp":            BMP,
	"image/x-ms-bmp": BMP,
	"tiff":           TIFF,
	"tif":            TIFF,
	"image/tif":      TIFF,
}

// Normalize returns the canonical MIME type for format.
// Matching is case-insensitive and accepts bare extensions such as "jpg".
func Normalize(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if canon, ok := aliases[f]; ok {
		f = canon
	}
	if _, ok := encoders[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return f, nil
}

// Formats returns the canonical MIME types, sorted.
func Formats() []string {
	out := make([]string, 0, len(encoders))
	for f := range encoders {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Encode encodes img in the given format.
func Encode(img image.Image, format string) ([]byte, error) {
	f, err := Normalize(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encoders[f](&buf, img); err != nil {
		return nil, fmt.Errorf("imageenc: encode %s: %w", f, err)
	}
	return buf.Bytes(), nil
}

// DataURL returns data as a base64 data URL of the given MIME type.
func DataURL(format string, data []byte) string {
	var sb strings.Builder
	sb.Grow(len("data:;base64,") + len(format) + base64.StdEncoding.EncodedLen(len(data)))
	sb.WriteString("data:")
	sb.WriteString(format)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	return sb.String()
}
