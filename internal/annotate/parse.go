package annotate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed marks a detection payload that could not be understood.
// Callers are expected to degrade to an empty ErrorSet rather than
// surface this to the user.
var ErrMalformed = errors.New("malformed detection response")

type rawErrorSet struct {
	Spelling   *[]ErrorItem `json:"spelling"`
	Incomplete *[]ErrorItem `json:"incomplete"`
	Context    *[]ErrorItem `json:"context"`
}

// ParseErrorSet decodes the detection service's JSON payload. A
// missing category is treated as an empty list, but a payload with
// none of the three categories present is malformed, as is anything
// that fails to decode.
func ParseErrorSet(payload string) (ErrorSet, error) {
	var raw rawErrorSet
	if err := json.Unmarshal([]byte(stripCodeFence(payload)), &raw); err != nil {
		return ErrorSet{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if raw.Spelling == nil && raw.Incomplete == nil && raw.Context == nil {
		return ErrorSet{}, fmt.Errorf("%w: no error categories present", ErrMalformed)
	}

	var set ErrorSet
	if raw.Spelling != nil {
		set.Spelling = *raw.Spelling
	}
	if raw.Incomplete != nil {
		set.Incomplete = *raw.Incomplete
	}
	if raw.Context != nil {
		set.Context = *raw.Context
	}
	return set, nil
}

// stripCodeFence removes a surrounding markdown code fence, which chat
// models sometimes wrap around JSON output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
