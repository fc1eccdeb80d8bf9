// Package span locates detected errors inside a turn's text and turns
// them into clickable regions. Spans are recomputed on every render;
// they are a pure function of (text, error set) and are never stored.
package span

import (
	"regexp"
	"sort"

	"github.com/sencheck/sencheck/internal/annotate"
)

// Span is one highlightable region of a turn's text.
type Span struct {
	Category    annotate.Category
	ErrorText   string
	TargetHint  string
	StartOffset int
	EndOffset   int
	SourceText  string
}

// Resolve maps every error item onto the first whole-word occurrence
// of its text, case-sensitively. Items with no occurrence are dropped.
// When the same error text is reported in more than one category the
// earliest category in precedence order (spelling > incomplete >
// context) wins and the rest are suppressed.
//
// The result is sorted by descending start offset and contains no
// overlapping spans. Markup insertion must walk the list in this
// order: decorating a span never shifts the offsets of spans still to
// be processed, since those all start earlier in the string.
func Resolve(text string, set annotate.ErrorSet) []Span {
	var spans []Span
	seen := make(map[string]bool)

	for _, cat := range annotate.Categories {
		for _, item := range set.Items(cat) {
			if item.ErrorText == "" || seen[item.ErrorText] {
				continue
			}
			seen[item.ErrorText] = true

			loc := locateWord(text, item.ErrorText)
			if loc == nil {
				continue // not present in the text, cannot be annotated
			}
			spans = append(spans, Span{
				Category:    cat,
				ErrorText:   item.ErrorText,
				TargetHint:  item.TargetHint,
				StartOffset: loc[0],
				EndOffset:   loc[1],
				SourceText:  text,
			})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].StartOffset > spans[j].StartOffset
	})

	return dropOverlaps(spans)
}

// locateWord finds the first whole-word occurrence of word in text
// and returns its [start, end) offsets, or nil if absent.
func locateWord(text, word string) []int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return nil
	}
	return re.FindStringIndex(text)
}

// dropOverlaps filters a descending-start span list so that kept
// spans never overlap. The input order favors later spans; within an
// overlap the span already kept wins.
func dropOverlaps(spans []Span) []Span {
	out := spans[:0]
	limit := -1 // start offset of the last kept span
	for _, s := range spans {
		if limit >= 0 && s.EndOffset > limit {
			continue
		}
		out = append(out, s)
		limit = s.StartOffset
	}
	return out
}
