package suggest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/sencheck/sencheck/internal/annotate"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "exactly three",
			in:   []string{"happy", "happily", "happier"},
			want: []string{"happy", "happily", "happier"},
		},
		{
			name: "truncates beyond three",
			in:   []string{"a", "b", "c", "d", "e"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "pads below three",
			in:   []string{"happy"},
			want: []string{"happy", "", ""},
		},
		{
			name: "drops blanks and trims",
			in:   []string{"  happy ", "", "   ", "glad"},
			want: []string{"happy", "glad", ""},
		},
		{
			name: "nil input",
			in:   nil,
			want: []string{"", "", ""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSplitCandidates(t *testing.T) {
	got := Normalize(SplitCandidates("happy\nhappily\nhappier\n"))
	want := []string{"happy", "happily", "happier"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	req := Request{
		ErrorText:   "hapy",
		Category:    annotate.Spelling,
		ContextText: "I feel hapy for your grad",
	}

	prompt := BuildUserPrompt(req)
	for _, expected := range []string{"spelling", "hapy", "I feel hapy for your grad"} {
		if !strings.Contains(prompt, expected) {
			t.Errorf("expected prompt to contain %q, got: %s", expected, prompt)
		}
	}
}
