// Package highlight splits field text into matched and unmatched segments for a
// set of search terms.
//
// Terms are applied one after another and each term is applied to every segment
// produced so far, matched or not. A later term that matches inside an earlier
// match therefore nests (Depth 2) rather than merging with it.
package highlight

import (
	"html"
	"regexp"
	"strings"

	"clinic-directory/pkg/textmatch"
)

// Segment is a run of the original text. Depth counts how many terms matched it.
type Segment struct {
	Text  string `json:"text"`
	Depth int    `json:"depth,omitempty"`
}

// IsMatch reports whether at least one term matched the segment.
func (s Segment) IsMatch() bool {
	return s.Depth > 0
}

// Highlight returns the segments of text for terms. Joining the segment texts
// always yields text unchanged. Empty text yields no segments.
func Highlight(text string, terms []string) []Segment {
	if text == "" {
		return nil
	}

	segments := []Segment{{Text: text}}
	for _, term := range terms {
		re, ok := textmatch.Pattern(term)
		if !ok {
			continue
		}
		segments = split(segments, re)
	}
	return segments
}

func split(segments []Segment, re *regexp.Regexp) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		locs := re.FindAllStringIndex(seg.Text, -1)
		if len(locs) == 0 {
			out = append(out, seg)
			continue
		}

		last := 0
		for _, loc := range locs {
			if loc[0] > last {
				out = append(out, Segment{Text: seg.Text[last:loc[0]], Depth: seg.Depth})
			}
			out = append(out, Segment{Text: seg.Text[loc[0]:loc[1]], Depth: seg.Depth + 1})
			last = loc[1]
		}
		if last < len(seg.Text) {
			out = append(out, Segment{Text: seg.Text[last:], Depth: seg.Depth})
		}
	}
	return out
}

// Render joins segments, passing matched ones through mark.
func Render(segments []Segment, mark func(Segment) string) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.IsMatch() {
			b.WriteString(mark(seg))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Markup renders text as HTML with every match wrapped in <mark>, one element
// per level of nesting. All text is escaped.
func Markup(text string, terms []string) string {
	return MarkupSegments(Highlight(text, terms))
}

// MarkupSegments is Markup for segments that were already computed. The input is
// not modified.
func MarkupSegments(segments []Segment) string {
	return Render(escape(segments), func(seg Segment) string {
		return strings.Repeat("<mark>", seg.Depth) + seg.Text + strings.Repeat("</mark>", seg.Depth)
	})
}

func escape(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		out[i] = Segment{Text: html.EscapeString(seg.Text), Depth: seg.Depth}
	}
	return out
}
