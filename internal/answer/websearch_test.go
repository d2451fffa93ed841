package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vidsage/pkg/ai"
)

func TestNeedsWebSearch(t *testing.T) {
	cases := []struct {
		question string
		want     bool
	}{
		{"What are GPT-4o-mini's competitors?", true},
		{"How does this tool compare to alternatives?", true},
		{"What is the latest pricing for this product?", true},
		{"What is the market share of this platform?", true},
		{"What is the market for this?", true},
		{"Who is Demis Hassabis?", true},
		{"What is OpenAI doing?", true},
		{"Is there a newer version of this framework?", true},
		{"Are there other frameworks like this one?", true},
		{"Is this tool available nowadays?", true},
		{"What is the company doing these days?", true},
		{"Is Heroku still free?", true},
		{"What does the speaker say at 2:14?", false},
		{"Summarize the second section of the video", false},
		{"What examples are given in the talk?", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range cases {
		if got := NeedsWebSearch(tc.question); got != tc.want {
			t.Errorf("NeedsWebSearch(%q) = %v, want %v", tc.question, got, tc.want)
		}
	}
}

func TestNeedsWebSearchBusinessConjunction(t *testing.T) {
	// Neither half of the present-tense business rule fires on its own.
	if NeedsWebSearch("Which tool is shown in the demo?") {
		t.Fatal("business term alone should not trigger augmentation")
	}
	if NeedsWebSearch("Do people speak like this nowadays?") {
		t.Fatal("present-tense qualifier alone should not trigger augmentation")
	}
	if !NeedsWebSearch("Is this platform worth using nowadays?") {
		t.Fatal("business term with present-tense qualifier should trigger augmentation")
	}
}

func TestNeedsWebSearchWordBoundaries(t *testing.T) {
	// "vs" inside a word must not trigger.
	if NeedsWebSearch("What does the canvas demo show?") {
		t.Fatal("substring match should not trigger augmentation")
	}
}

type scriptedGenerator struct {
	response string
	err      error
	lastUser string
}

func (s *scriptedGenerator) GenerateText(_ context.Context, _, user string, _ ai.Options) (string, error) {
	s.lastUser = user
	return s.response, s.err
}

func TestFetchWebContext(t *testing.T) {
	long := strings.Repeat("Useful background fact. ", 5)

	t.Run("usable result", func(t *testing.T) {
		gen := &scriptedGenerator{response: long}
		got := FetchWebContext(context.Background(), gen, "competitors?", "My Video")
		if got != strings.TrimSpace(long) {
			t.Fatalf("got %q", got)
		}
		if !strings.Contains(gen.lastUser, "My Video") {
			t.Fatal("prompt should name the video")
		}
	})

	t.Run("too short", func(t *testing.T) {
		gen := &scriptedGenerator{response: "Not much."}
		if got := FetchWebContext(context.Background(), gen, "q", "v"); got != "" {
			t.Fatalf("short result should be discarded, got %q", got)
		}
	})

	t.Run("refusal", func(t *testing.T) {
		gen := &scriptedGenerator{response: "I'm sorry, but I cannot search the web for current information about that topic."}
		if got := FetchWebContext(context.Background(), gen, "q", "v"); got != "" {
			t.Fatalf("refusal should be discarded, got %q", got)
		}
	})

	t.Run("error swallowed", func(t *testing.T) {
		gen := &scriptedGenerator{err: errors.New("upstream down")}
		if got := FetchWebContext(context.Background(), gen, "q", "v"); got != "" {
			t.Fatalf("errors should yield empty context, got %q", got)
		}
	})
}
