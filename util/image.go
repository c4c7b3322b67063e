package util

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
)

// stamp uploads accept the same types the composer UI accepts
var stampMimeTypes = []string{"image/svg+xml", "image/png", "image/jpeg", "image/jpg"}

// ValidateStampImage checks that the uploaded stamp decodes as one of the
// supported image types
func ValidateStampImage(mimeType string, content []byte) error {
	if len(content) == 0 {
		return errors.New("empty content")
	}
	supported := false
	for _, mt := range stampMimeTypes {
		if mt == mimeType {
			supported = true
			break
		}
	}
	if !supported {
		return errors.New("unsupported image type")
	}

	var decodeErr error
	switch mimeType {
	case "image/jpg", "image/jpeg":
		_, decodeErr = jpeg.Decode(bytes.NewReader(content))
	case "image/png":
		_, decodeErr = png.Decode(bytes.NewReader(content))
	case "image/svg+xml":
		if !strings.Contains(string(content), "<svg") {
			decodeErr = errors.New("not an svg document")
		}
	}
	return decodeErr
}

// ParseImageBytesToJPG decodes png/jpeg content into an image.Image,
// converting png to jpeg on the way
func ParseImageBytesToJPG(content []byte, mimeType string) (image.Image, error) {
	if len(content) == 0 {
		return nil, errors.New("empty content")
	}
	var decodeErr error
	var img image.Image
	switch mimeType {
	case "image/jpg", "image/jpeg":
		img, decodeErr = jpeg.Decode(bytes.NewReader(content))
	case "image/png":
		img, decodeErr = png.Decode(bytes.NewReader(content))
		if decodeErr == nil {
			buf := new(bytes.Buffer)
			jpeg.Encode(buf, img, &jpeg.Options{Quality: 83})
			img, decodeErr = jpeg.Decode(buf)
		}
	default:
		return nil, errors.New("unsupported image type")
	}
	return img, decodeErr
}
