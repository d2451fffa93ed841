package answer

import (
	"strings"
	"testing"

	"vidsage/pkg/domain"
)

func TestResolveSubstitutesAllPlaceholders(t *testing.T) {
	tpl := PromptTemplate{
		System: "Duration is ${videoDuration}.",
		User:   "Title: ${title}\nTranscript: ${transcript}\nContext: ${context}\nWeb: ${webSearchInfo}\nQ: ${question}",
	}
	system, user := Resolve(tpl, Vars{
		Context:       "Q: earlier\nA: answered",
		Transcript:    "hello world",
		VideoDuration: "10:23",
		Question:      "what is said?",
		Title:         "My Video",
		WebSearchInfo: "background facts",
	})
	if system != "Duration is 10:23." {
		t.Fatalf("system = %q", system)
	}
	for _, want := range []string{"My Video", "hello world", "answered", "background facts", "what is said?"} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q:\n%s", want, user)
		}
	}
	if strings.Contains(user, "${") {
		t.Fatalf("unresolved placeholder left in user prompt:\n%s", user)
	}
}

func TestResolveIsTotalOnEmptyVars(t *testing.T) {
	system, user := Resolve(DefaultChatTemplate(), Vars{})
	if strings.Contains(system, "${") || strings.Contains(user, "${") {
		t.Fatalf("placeholders survived empty vars:\nsystem: %s\nuser: %s", system, user)
	}
}

func TestResolveLeavesUnknownPlaceholders(t *testing.T) {
	tpl := PromptTemplate{User: "${question} ${unknownThing}"}
	_, user := Resolve(tpl, Vars{Question: "hi"})
	if !strings.Contains(user, "${unknownThing}") {
		t.Fatalf("unknown placeholder should survive untouched, got %q", user)
	}
	if strings.Contains(user, "${question}") {
		t.Fatalf("known placeholder was not replaced: %q", user)
	}
}

func TestRenderContext(t *testing.T) {
	got := RenderContext([]QA{
		{Question: "first?", Answer: "one"},
		{Question: "second?", Answer: "two"},
	})
	want := "Q: first?\nA: one\n\nQ: second?\nA: two"
	if got != want {
		t.Fatalf("RenderContext = %q, want %q", got, want)
	}
	if RenderContext(nil) != "" {
		t.Fatal("empty history should render to empty string")
	}
}

func TestTemplateFromConfig(t *testing.T) {
	tpl := TemplateFromConfig(domain.PromptConfig{
		SystemPrompt:       "sys",
		UserPromptTemplate: "user ${question}",
	})
	if tpl.System != "sys" || tpl.User != "user ${question}" {
		t.Fatalf("unexpected template: %+v", tpl)
	}
}

func TestKeyQuotesFallbackMentionsBestQuotes(t *testing.T) {
	tpl, ok := QuickActionTemplate(ActionKeyQuotes)
	if !ok {
		t.Fatal("missing Key Quotes template")
	}
	if !strings.Contains(tpl.User, "Best quotes from") {
		t.Fatalf("Key Quotes template should ask for best quotes:\n%s", tpl.User)
	}
}
