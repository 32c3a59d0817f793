// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package buffer

import (
	"bytes"
	"image"
	"image/draw"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

// NewFromImageFile decodes an image file into a tightly packed
// R8G8B8A8Unorm Buffer, downsampling first if either dimension exceeds
// maxDim (typically the backend's Limits.MaxImage2D). Formats
// registered via golang.org/x/image (bmp/tiff/webp) are decoded
// alongside the stdlib's png/jpeg/gif.
func NewFromImageFile(filename string, maxDim int) (*Buffer, int, int, error) {
	f, err := os.ReadFile(filename)
	if err != nil {
		return nil, 0, 0, errs.New(pkgName, errs.IO, err.Error())
	}
	img, _, err := image.Decode(bytes.NewReader(f))
	if err != nil {
		return nil, 0, 0, errs.New(pkgName, errs.InvalidData, err.Error())
	}

	if maxDim > 0 {
		b := img.Bounds()
		if b.Dx() > maxDim || b.Dy() > maxDim {
			img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		}
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	buf, err := NewFromData(linear.RGBA8Unorm, rgba.Pix)
	if err != nil {
		return nil, 0, 0, err
	}
	return buf, w, h, nil
}

// Layout identifies the plane layout of an Image.
type Layout int

// Layouts.
const (
	LayoutDefault Layout = iota // single interleaved plane
	LayoutNV12                  // luma plane + interleaved chroma plane
	LayoutNV12BT709
)

// ColorInfo carries the color interpretation of an Image's samples.
type ColorInfo struct {
	SRGB      bool
	FullRange bool
}

// Image wraps a GPU texture (or planar tuple) plus the metadata frame
// consumers need: a layout tag, a 4x4 coordinates matrix, color info, a
// monotonically increasing revision counter bumped on content change,
// and the timestamp of the content.
type Image struct {
	Planes []gpu.Image // one entry for LayoutDefault, two for NV12
	Layout Layout
	Coords linear.M4
	Color  ColorInfo

	rev uint64
	ts  float64
}

// NewImage wraps planes into an Image with an identity coordinates
// matrix and revision 1.
func NewImage(layout Layout, planes ...gpu.Image) *Image {
	img := &Image{Planes: planes, Layout: layout, rev: 1}
	img.Coords.I()
	return img
}

// Revision returns the image's current content revision. Consumers cache
// the revision they last bound and rebind only when it differs.
func (i *Image) Revision() uint64 { return i.rev }

// Bump records a content change at time ts, advancing the revision.
func (i *Image) Bump(ts float64) {
	i.rev++
	i.ts = ts
}

// Timestamp returns the time of the most recent content change.
func (i *Image) Timestamp() float64 { return i.ts }
