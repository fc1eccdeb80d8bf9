package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/muesli/termenv"
)

// Highlight is one error span to decorate in a rendered turn.
type Highlight struct {
	ErrorText string
	Category  string
}

// RenderTurn formats one transcript line for the terminal, marking
// every error span. Like the source UI, decoration uses a global
// whole-word regex per error text: if the same token appears more than
// once in the sentence, every occurrence is marked, not only the one
// the resolver located.
func RenderTurn(id uint64, text, origin string, highlights []Highlight) string {
	marked := text
	for _, h := range highlights {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(h.ErrorText) + `\b`)
		if err != nil {
			continue
		}
		marked = re.ReplaceAllStringFunc(marked, func(m string) string {
			return markSpan(m, h.Category)
		})
	}

	prefix := StyleUserTurn.Render(fmt.Sprintf("#%d you", id))
	if origin == "correction" {
		prefix = StyleCorrection.Render(fmt.Sprintf("#%d fix", id))
	}
	return prefix + "  " + marked
}

// markSpan decorates one matched token. Plain terminals get bracket
// markers instead of colors.
func markSpan(token, category string) string {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return fmt.Sprintf("[%s|%s]", token, category)
	}
	return StyleSpan.Render(token)
}

// RenderSession formats the live suggestion session for the terminal.
func RenderSession(errorText, category, selected string, candidates []string, failed bool) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(fmt.Sprintf("Suggestions for %q (%s)", errorText, category)))
	b.WriteString("\n")

	if failed {
		b.WriteString(StyleError.Render("no suggestions available") + " " +
			StyleSubtle.Render("(try: sencheck regenerate)") + "\n")
		return b.String()
	}

	if len(candidates) == 0 {
		b.WriteString(StyleMuted.Render("waiting for suggestions...") + "\n")
		return b.String()
	}

	for i, c := range candidates {
		label := fmt.Sprintf("  %d) %s", i, c)
		if c == "" {
			label = fmt.Sprintf("  %d) %s", i, StyleSubtle.Render("(empty)"))
		} else if c == selected {
			label = StyleSelected.Render(fmt.Sprintf("> %d) %s", i, c))
		}
		b.WriteString(label + "\n")
	}
	return b.String()
}
