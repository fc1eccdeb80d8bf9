package engine

import "github.com/sencheck/sencheck/internal/suggest"

// State names the suggestion workflow's position. Idle means no live
// session; at most one session exists at a time and clicking a new
// span discards the previous one without confirmation.
type State string

const (
	Idle                State = "idle"
	AwaitingSuggestions State = "awaiting_suggestions"
	Presenting          State = "presenting"
)

// session is the live suggestion workflow. The token is the identity
// a completion handler must present before it may touch the session:
// responses carrying a token that no longer matches are stale and are
// dropped silently.
type session struct {
	token      uint64
	req        suggest.Request
	state      State
	candidates []string // always exactly suggest.SlotCount entries once presented
	selected   string
	failed     bool // last request came back empty-handed
}

// SessionView is the read-only snapshot handed to the UI layer.
type SessionView struct {
	State       State
	ErrorText   string
	Category    string
	ContextText string
	Candidates  []string
	Selected    string
	Failed      bool
}

func (s *session) view() SessionView {
	v := SessionView{
		State:       s.state,
		ErrorText:   s.req.ErrorText,
		Category:    string(s.req.Category),
		ContextText: s.req.ContextText,
		Selected:    s.selected,
		Failed:      s.failed,
	}
	v.Candidates = make([]string, len(s.candidates))
	copy(v.Candidates, s.candidates)
	return v
}
