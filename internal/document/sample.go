package document

import (
	_ "embed"
	"strings"
)

//go:embed sample.md
var sampleText string

// Sample lays out the built-in demo page.
func Sample(width, height float64) *Document {
	d, err := Parse(strings.NewReader(sampleText), ParseOptions{Width: width, Height: height})
	if err != nil {
		// the embedded text is a string; reading it cannot fail
		panic(err)
	}
	return d
}
