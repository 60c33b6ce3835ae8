package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataURIContentType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "png", input: "data:image/png;base64,iVBORw0KGgo=", want: "image/png"},
		{name: "parameters are kept", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=", want: "image/svg+xml;charset=utf-8"},
		{name: "empty", input: "", want: ""},
		{name: "no prefix", input: "image/png;base64,iVBORw0KGgo=", want: ""},
		{name: "not base64", input: "data:image/png,iVBORw0KGgo=", want: ""},
		{name: "no media type", input: "data:;base64,", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataURIContentType(tt.input))
		})
	}
}

func TestMimetypes_DataURI(t *testing.T) {
	assert.NoError(t, ValidateVar("data:image/png;base64,iVBORw0KGgo=", "mimetypes=image/png image/jpeg"))
	assert.Error(t, ValidateVar("data:text/plain;base64,aGk=", "mimetypes=image/png image/jpeg"))
	assert.Error(t, ValidateVar("not a data uri", "mimetypes=image/png"))
}
