package html_parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text passes through",
			input:    "Hello world",
			expected: "Hello world",
		},
		{
			name:     "tags removed",
			input:    "<b>Bold</b> and <i>italic</i>",
			expected: "Bold and italic",
		},
		{
			name:     "script content dropped entirely",
			input:    "before<script>alert('x')</script>after",
			expected: "beforeafter",
		},
		{
			name:     "style content dropped entirely",
			input:    "before<style>p { color: red }</style>after",
			expected: "beforeafter",
		},
		{
			name:     "br becomes newline",
			input:    "line one<br/>line two",
			expected: "line one\nline two",
		},
		{
			name:     "closing p becomes paragraph break",
			input:    "<p>first</p><p>second</p>",
			expected: "first\n\nsecond",
		},
		{
			name:     "entities decoded",
			input:    "fish &amp; chips &lt;cheap&gt;",
			expected: "fish & chips <cheap>",
		},
		{
			name:     "runs of spaces collapsed",
			input:    "too    many     spaces",
			expected: "too many spaces",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripTags(tt.input))
		})
	}
}

func TestStripTagsIdempotent(t *testing.T) {
	inputs := []string{
		"<p>Some <b>rich</b> text with &amp; entities.</p>",
		"plain already",
		"multi<br>line<br>text",
	}
	for _, input := range inputs {
		once := StripTags(input)
		assert.Equal(t, once, StripTags(once), "StripTags must be idempotent on its own output")
	}
}
