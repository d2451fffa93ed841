package answer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vidsage/pkg/ai"
)

func TestAnswerAppendsNonceAndWarmSampling(t *testing.T) {
	gen := &scriptedGenerator{response: `{"answer": "hi", "timestamps": []}`}
	g := NewGenerator(&optionsRecorder{inner: gen}, time.Second)

	res, err := g.Answer(context.Background(), DefaultChatTemplate(), Vars{Question: "q", VideoDuration: "10:00"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if res.Answer != "hi" {
		t.Fatalf("answer = %q", res.Answer)
	}
	if !strings.Contains(gen.lastUser, "[request ") {
		t.Fatal("user prompt should carry a uniqueness nonce")
	}
}

type optionsRecorder struct {
	inner *scriptedGenerator
	opts  ai.Options
}

func (o *optionsRecorder) GenerateText(ctx context.Context, system, user string, opts ai.Options) (string, error) {
	o.opts = opts
	return o.inner.GenerateText(ctx, system, user, opts)
}

func TestAnswerRequestsJSONWithTemperature(t *testing.T) {
	rec := &optionsRecorder{inner: &scriptedGenerator{response: `{"answer": "x"}`}}
	g := NewGenerator(rec, time.Second)
	if _, err := g.Answer(context.Background(), DefaultChatTemplate(), Vars{}); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !rec.opts.JSONResponse {
		t.Fatal("expected JSON response mode")
	}
	if rec.opts.Temperature < 0.5 {
		t.Fatalf("expected warm sampling, got %v", rec.opts.Temperature)
	}
}

func TestAnswerTimeoutSentinel(t *testing.T) {
	gen := &scriptedGenerator{err: context.DeadlineExceeded}
	g := NewGenerator(gen, time.Second)
	_, err := g.Answer(context.Background(), DefaultChatTemplate(), Vars{})
	if !errors.Is(err, ErrGenerationTimeout) {
		t.Fatalf("want ErrGenerationTimeout, got %v", err)
	}
}

func TestAnswerGenericFailureSentinel(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("api key rejected")}
	g := NewGenerator(gen, time.Second)
	_, err := g.Answer(context.Background(), DefaultChatTemplate(), Vars{})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("want ErrGeneration, got %v", err)
	}
	if errors.Is(err, ErrGenerationTimeout) {
		t.Fatal("generic failure must not look like a timeout")
	}
}

func TestParseResult(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		answer     string
		timestamps []string
	}{
		{
			name:       "clean JSON",
			raw:        `{"answer": "the point", "timestamps": ["1:05", "12:00"]}`,
			answer:     "the point",
			timestamps: []string{"1:05"},
		},
		{
			name:   "fenced JSON",
			raw:    "```json\n{\"answer\": \"fenced\"}\n```",
			answer: "fenced",
		},
		{
			name:   "prose around JSON",
			raw:    `Sure, here you go: {"answer": "wrapped"} hope that helps`,
			answer: "wrapped",
		},
		{
			name:       "truncated JSON salvaged",
			raw:        `{"answer": "cut off mid \"stream\"", "timestamps": ["2:10", "99:00"], "extra": `,
			answer:     `cut off mid "stream"`,
			timestamps: []string{"2:10"},
		},
		{
			name:   "escaped newlines unescaped",
			raw:    `{"answer": "line one\nline two", "broken": `,
			answer: "line one\nline two",
		},
		{
			name:   "plain prose",
			raw:    "The video is about distributed systems.",
			answer: "The video is about distributed systems.",
		},
		{
			name:   "empty output",
			raw:    "",
			answer: fallbackAnswer,
		},
		{
			name:   "json noise without answer field",
			raw:    `{"foo": "bar"`,
			answer: fallbackAnswer,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := parseResult(tc.raw, "10:00")
			if res.Answer != tc.answer {
				t.Fatalf("answer = %q, want %q", res.Answer, tc.answer)
			}
			if len(tc.timestamps) > 0 {
				if len(res.Timestamps) != len(tc.timestamps) {
					t.Fatalf("timestamps = %v, want %v", res.Timestamps, tc.timestamps)
				}
				for i := range tc.timestamps {
					if res.Timestamps[i] != tc.timestamps[i] {
						t.Fatalf("timestamps = %v, want %v", res.Timestamps, tc.timestamps)
					}
				}
			}
		})
	}
}

func TestGenerateSummaryFallsBack(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("down")}
	g := NewGenerator(gen, time.Second)
	s := g.GenerateSummary(context.Background(), "T", "5:00", "a short transcript")
	if s == nil || s.Short == "" {
		t.Fatal("fallback summary must be non-empty")
	}
}

func TestGenerateSummaryFiltersTimestamps(t *testing.T) {
	gen := &scriptedGenerator{response: `{
		"short": "s",
		"keyTakeaways": [
			{"insight": "in range", "timestamp": "4:00"},
			{"insight": "out of range", "timestamp": "9:00"}
		]
	}`}
	g := NewGenerator(gen, time.Second)
	s := g.GenerateSummary(context.Background(), "T", "5:00", "tr")
	if s.KeyTakeaways[0].Timestamp != "4:00" {
		t.Fatalf("valid timestamp dropped: %+v", s.KeyTakeaways[0])
	}
	if s.KeyTakeaways[1].Timestamp != "" {
		t.Fatalf("out-of-range timestamp kept: %+v", s.KeyTakeaways[1])
	}
	if s.InsightCount != 2 {
		t.Fatalf("insight count = %d", s.InsightCount)
	}
}

func TestGeneratePlanErrors(t *testing.T) {
	g := NewGenerator(&scriptedGenerator{response: "not json at all"}, time.Second)
	if _, err := g.GeneratePlan(context.Background(), "T", "content", "profile"); !errors.Is(err, ErrGeneration) {
		t.Fatalf("want ErrGeneration, got %v", err)
	}
}

func TestGeneratePlanParses(t *testing.T) {
	g := NewGenerator(&scriptedGenerator{response: `{
		"items": [{"title": "do x", "description": "d", "effort": "low", "impact": "high", "target": "t", "priority": 1}],
		"quickWins": ["today"]
	}`}, time.Second)
	plan, err := g.GeneratePlan(context.Background(), "T", "content", "profile")
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(plan.Items) != 1 || plan.Items[0].Title != "do x" || len(plan.QuickWins) != 1 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestGenerateQuickQuestionsFallback(t *testing.T) {
	g := NewGenerator(&scriptedGenerator{response: "{}"}, time.Second)
	qs := g.GenerateQuickQuestions(context.Background(), "T", "tr")
	if len(qs) != 4 {
		t.Fatalf("want 4 fallback questions, got %v", qs)
	}
}

func TestGenerateQuickQuestionsCapsAtFour(t *testing.T) {
	g := NewGenerator(&scriptedGenerator{response: `{"questions": ["a", "b", "c", "d", "e"]}`}, time.Second)
	qs := g.GenerateQuickQuestions(context.Background(), "T", "tr")
	if len(qs) != 4 {
		t.Fatalf("want capped at 4, got %v", qs)
	}
}
