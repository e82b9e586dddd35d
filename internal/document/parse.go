package document

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ParseOptions control how text is laid out. A zero LineHeight means one
// unit per line, which suits terminal rows.
type ParseOptions struct {
	Width      float64
	Height     float64
	LineHeight float64
}

var (
	headingRe    = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*$`)
	explicitIDRe = regexp.MustCompile(`\s*\{#([A-Za-z0-9_\-:.]+)\}$`)
)

// Parse lays out markdown-style text. Every heading opens a section element
// positioned at the heading's line; the heading itself is a child of that
// section, so page-mode targets resolve through the offset-parent chain.
// Heading ids come from a trailing {#id} or a slug of the title.
func Parse(r io.Reader, opts ParseOptions) (*Document, error) {
	if opts.LineHeight <= 0 {
		opts.LineHeight = 1
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("document: read: %w", err)
	}

	d := New(opts.Width, opts.Height)
	d.lineHeight = opts.LineHeight

	type open struct {
		section *Element
		start   int
	}
	var current *open
	closeSection := func(end int) {
		if current == nil {
			return
		}
		current.section.height = float64(end-current.start) * opts.LineHeight
		d.body.height = d.body.ScrollHeight()
	}

	seen := make(map[string]int)
	maxWidth := 0
	for i, line := range lines {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}

		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := m[2]
		id := ""
		if em := explicitIDRe.FindStringSubmatch(title); em != nil {
			id = em[1]
			title = strings.TrimSpace(title[:len(title)-len(em[0])])
		} else {
			id = Slug(title)
		}
		id = uniqueID(id, seen)

		closeSection(i)
		top := float64(i) * opts.LineHeight
		section := d.Append(nil, NewElement("section-"+id, top, 0, opts.Width, opts.LineHeight))
		d.Append(section, NewElement(id, 0, 0, float64(runewidth.StringWidth(title)), opts.LineHeight))
		current = &open{section: section, start: i}

		d.headings = append(d.headings, Heading{ID: id, Title: title, Level: len(m[1]), Line: i})
		lines[i] = m[1] + " " + title
	}
	closeSection(len(lines))

	d.lines = lines
	d.body.height = float64(len(lines)) * opts.LineHeight
	d.body.width = float64(maxWidth)
	d.root.clampScroll()
	return d, nil
}

// readLines splits r on newlines with no limit on line length. A final
// line without a newline is kept; trailing carriage returns are dropped.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Slug folds title into a lowercase, accent-free anchor id.
func Slug(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, title)
	if err != nil {
		plain = title
	}
	plain = cases.Fold().String(plain)

	var b strings.Builder
	dash := false
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func uniqueID(id string, seen map[string]int) string {
	if id == "" {
		id = "section"
	}
	n := seen[id]
	seen[id] = n + 1
	if n == 0 {
		return id
	}
	return fmt.Sprintf("%s-%d", id, n)
}
