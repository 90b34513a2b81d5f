package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractImageURLs(t *testing.T) {
	tests := map[string]struct {
		html     string
		expected []string
	}{
		"single image": {
			html:     `<p>hello</p><img src="https://example.com/a.png">`,
			expected: []string{"https://example.com/a.png"},
		},
		"document order preserved": {
			html: `<img src="https://example.com/1.png"><div><img src="https://example.com/2.png"></div>`,
			expected: []string{
				"https://example.com/1.png",
				"https://example.com/2.png",
			},
		},
		"protocol-relative normalized": {
			html:     `<img src="//cdn.example.com/a.png">`,
			expected: []string{"https://cdn.example.com/a.png"},
		},
		"data uri skipped": {
			html:     `<img src="data:image/png;base64,AAAA"><img src="https://example.com/b.png">`,
			expected: []string{"https://example.com/b.png"},
		},
		"empty and missing src skipped": {
			html:     `<img src=""><img>`,
			expected: nil,
		},
		"relative src skipped": {
			html:     `<img src="/images/local.png">`,
			expected: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractImageURLs(tt.html))
		})
	}
}
