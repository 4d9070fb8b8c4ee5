package estimate

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ParseDataURI splits "data:<mimetype>;base64,<data>" and decodes the payload.
func ParseDataURI(uri string) (string, []byte, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", nil, fmt.Errorf("%w: missing photo data", ErrInvalidInput)
	}

	meta, data, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(meta, "data:") {
		return "", nil, fmt.Errorf("%w: photo must be a data URI", ErrInvalidInput)
	}

	mediaType, encoding, ok := strings.Cut(strings.TrimPrefix(meta, "data:"), ";")
	if !ok || encoding != "base64" {
		return "", nil, fmt.Errorf("%w: photo data URI must be base64 encoded", ErrInvalidInput)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", nil, fmt.Errorf("%w: unsupported media type %q", ErrInvalidInput, mediaType)
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to decode image: %v", ErrInvalidInput, err)
	}
	if len(decoded) == 0 {
		return "", nil, fmt.Errorf("%w: missing photo data", ErrInvalidInput)
	}

	return mediaType, decoded, nil
}

// EncodeDataURI builds a base64 data URI for an image.
func EncodeDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
