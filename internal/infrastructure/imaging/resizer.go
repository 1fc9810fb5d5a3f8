// Package imaginginfra normalizes uploaded avatar images.
package imaginginfra

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	AvatarWidth  = 250
	AvatarHeight = 250
)

// Resizer scales images to a fixed size.
type Resizer struct {
	width  int
	height int
}

func NewResizer() *Resizer {
	return &Resizer{width: AvatarWidth, height: AvatarHeight}
}

// Image is an encoded, resized image.
type Image struct {
	Data        []byte
	Ext         string
	ContentType string
}

// ErrNotImage is returned when the input cannot be decoded as an image.
var ErrNotImage = errors.New("unsupported or corrupt image")

// Resize decodes r, scales it to exactly width x height and re-encodes it in the
// format implied by filename. Unknown extensions are encoded as JPEG.
func (rz *Resizer) Resize(r io.Reader, filename string) (*Image, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	dst := imaging.Resize(src, rz.width, rz.height, imaging.Lanczos)

	ext := strings.ToLower(filepath.Ext(filename))
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		format, ext = imaging.JPEG, ".jpg"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, format); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	ct := mime.TypeByExtension(ext)
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &Image{Data: buf.Bytes(), Ext: ext, ContentType: ct}, nil
}
