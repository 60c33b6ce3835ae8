package validator

import "strings"

const (
	dataURIPrefix = "data:"
	dataURIMarker = ";base64,"
)

// dataURIContentType returns the media type of a base64 data URI, or "" when value is not one.
func dataURIContentType(value string) string {
	if !strings.HasPrefix(value, dataURIPrefix) {
		return ""
	}

	end := strings.Index(value, dataURIMarker)
	if end <= len(dataURIPrefix) {
		return ""
	}

	return value[len(dataURIPrefix):end]
}
