package util

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// IsDataURL reports whether the string is an embedded data URL
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURL splits a base64 data URL into its mime type and raw bytes
func ParseDataURL(dataURL string) (string, []byte, error) {
	if !IsDataURL(dataURL) {
		return "", nil, errors.New("not a data URL")
	}
	rest := strings.TrimPrefix(dataURL, "data:")
	semi := strings.Index(rest, ",")
	if semi < 0 {
		return "", nil, errors.New("malformed data URL")
	}
	meta := rest[:semi]
	payload := rest[semi+1:]

	mimeType := meta
	if idx := strings.Index(meta, ";"); idx >= 0 {
		mimeType = meta[:idx]
		if !strings.Contains(meta, "base64") {
			return "", nil, errors.New("unsupported data URL encoding")
		}
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return mimeType, content, nil
}

// ToDataURL encodes raw bytes as a base64 data URL
func ToDataURL(mimeType string, content []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(content))
}
