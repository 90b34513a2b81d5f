// ABOUTME: Favicon candidate types and size parsing
// ABOUTME: Candidates are scored later by the feed icon service

package favicon

import (
	"strconv"
	"strings"
)

// Info describes one discovered favicon candidate.
type Info struct {
	URL       string
	Dimension Dimension // nil when the page does not declare a size
	MimeType  string
}

// Dimension is the declared size of an icon candidate. It is either
// Adaptive ("any", scalable) or a Fixed pixel size.
type Dimension interface {
	isDimension()
}

// Adaptive marks an icon declared with sizes="any".
type Adaptive struct{}

func (Adaptive) isDimension() {}

// Fixed is a declared WxH pixel size.
type Fixed struct {
	Width  int
	Height int
}

func (Fixed) isDimension() {}

// Area returns the pixel area of the fixed size.
func (f Fixed) Area() int {
	return f.Width * f.Height
}

// ParseSizes parses a link element's sizes attribute. Each
// space-separated token is either "any" or "<width>x<height>";
// malformed tokens are dropped.
func ParseSizes(sizes string) []Dimension {
	var dims []Dimension
	for _, word := range strings.Fields(sizes) {
		if strings.EqualFold(word, "any") {
			dims = append(dims, Adaptive{})
			continue
		}
		parts := strings.SplitN(strings.ToLower(word), "x", 2)
		if len(parts) != 2 {
			continue
		}
		width, errW := strconv.Atoi(parts[0])
		height, errH := strconv.Atoi(parts[1])
		if errW != nil || errH != nil || width < 0 || height < 0 {
			continue
		}
		dims = append(dims, Fixed{Width: width, Height: height})
	}
	return dims
}
