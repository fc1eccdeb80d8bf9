package daemon

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sencheck/sencheck/internal/engine"
	"github.com/sencheck/sencheck/internal/span"
	"github.com/sencheck/sencheck/internal/transcript"
)

func transcriptID(id uint64) transcript.TurnID {
	return transcript.TurnID(id)
}

// TurnView is the wire shape of one transcript turn.
type TurnView struct {
	ID        uint64     `json:"id"`
	Text      string     `json:"text"`
	Origin    string     `json:"origin"`
	Detection string     `json:"detection"`
	Spans     []SpanView `json:"spans,omitempty"`
}

// SpanView is the wire shape of one clickable span.
type SpanView struct {
	Category   string `json:"category"`
	ErrorText  string `json:"error"`
	TargetHint string `json:"target"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

// TurnViews snapshots the engine's history, resolving spans for every
// turn whose detection has finished.
func TurnViews(e *engine.Engine) []TurnView {
	turns := e.Turns()
	out := make([]TurnView, 0, len(turns))
	for _, t := range turns {
		v := TurnView{
			ID:        uint64(t.ID),
			Text:      t.Text,
			Origin:    string(t.Origin),
			Detection: string(t.Detection.Status),
		}
		if spans, err := e.Spans(t.ID); err == nil {
			v.Spans = SpanViews(spans)
		}
		out = append(out, v)
	}
	return out
}

// SpanViews converts resolved spans to their wire shape.
func SpanViews(spans []span.Span) []SpanView {
	out := make([]SpanView, 0, len(spans))
	for _, s := range spans {
		out = append(out, SpanView{
			Category:   string(s.Category),
			ErrorText:  s.ErrorText,
			TargetHint: s.TargetHint,
			Start:      s.StartOffset,
			End:        s.EndOffset,
		})
	}
	return out
}

// DecodeData unmarshals a DATA response payload into v.
func DecodeData(resp string, v any) error {
	payload, ok := strings.CutPrefix(resp, "DATA ")
	if !ok {
		return fmt.Errorf("unexpected response: %s", resp)
	}
	return json.Unmarshal([]byte(payload), v)
}
