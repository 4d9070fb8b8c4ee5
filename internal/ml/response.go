package ml

import (
	"errors"
	"strings"
)

// ErrEmptyResponse is returned when the engine produced no usable text.
var ErrEmptyResponse = errors.New("no content in response")

// CleanResponse strips markdown fences and surrounding chatter so that only
// the outermost JSON object remains.
func CleanResponse(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		text = text[start : end+1]
	}
	return text
}
