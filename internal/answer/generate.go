package answer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"vidsage/pkg/ai"
	"vidsage/pkg/domain"
)

var (
	// ErrGenerationTimeout means the model did not respond within the
	// configured deadline.
	ErrGenerationTimeout = errors.New("answer generation timed out")
	// ErrGeneration covers every other model failure.
	ErrGeneration = errors.New("answer generation failed")
)

const fallbackAnswer = "I couldn't generate a response for that question."

// Result is one answered chat turn.
type Result struct {
	Answer     string
	Timestamps []string
}

// Generator turns resolved prompts into structured answers.
type Generator struct {
	gen     ai.TextGenerator
	timeout time.Duration
}

// NewGenerator wraps a text generator with a per-call deadline. A zero
// timeout defaults to 30 seconds.
func NewGenerator(gen ai.TextGenerator, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Generator{gen: gen, timeout: timeout}
}

// Answer resolves the template against vars and asks the model for a JSON
// answer. Identical repeated questions get fresh responses: a nonce line is
// appended to the user prompt and sampling runs warm.
func (g *Generator) Answer(ctx context.Context, tpl PromptTemplate, vars Vars) (Result, error) {
	system, user := Resolve(tpl, vars)
	user = fmt.Sprintf("%s\n\n[request %d-%04d]", user, time.Now().UnixNano(), rand.Intn(10000))

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.gen.GenerateText(ctx, system, user, ai.Options{Temperature: 0.8, JSONResponse: true})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{}, fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
		}
		return Result{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return parseResult(raw, vars.VideoDuration), nil
}

type answerPayload struct {
	Answer     string   `json:"answer"`
	Timestamps []string `json:"timestamps"`
}

// parseResult recovers an answer from whatever the model produced. It never
// fails: malformed JSON degrades through salvage steps down to a fixed
// fallback string.
func parseResult(raw, videoDuration string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{Answer: fallbackAnswer}
	}

	if body, ok := extractJSON(raw); ok {
		var payload answerPayload
		if err := json.Unmarshal([]byte(body), &payload); err == nil && payload.Answer != "" {
			return Result{
				Answer:     payload.Answer,
				Timestamps: FilterTimestamps(payload.Timestamps, videoDuration),
			}
		}
		if res, ok := salvage(body, videoDuration); ok {
			return res
		}
	}
	if res, ok := salvage(raw, videoDuration); ok {
		return res
	}

	// The model answered in plain prose. Use it as-is unless it looks like
	// truncated JSON noise.
	if !strings.HasPrefix(raw, "{") {
		return Result{Answer: raw}
	}
	return Result{Answer: fallbackAnswer}
}

// extractJSON slices from the first '{' to the last '}', tolerating prose or
// markdown fences around the object.
func extractJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

var (
	answerFieldRe     = regexp.MustCompile(`"answer"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	timestampsFieldRe = regexp.MustCompile(`"timestamps"\s*:\s*\[([^\]]*)\]`)
	quotedRe          = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

// salvage pulls the answer field out of broken JSON with regexes.
func salvage(body, videoDuration string) (Result, bool) {
	m := answerFieldRe.FindStringSubmatch(body)
	if m == nil {
		return Result{}, false
	}
	res := Result{Answer: unescape(m[1])}
	if tm := timestampsFieldRe.FindStringSubmatch(body); tm != nil {
		var stamps []string
		for _, q := range quotedRe.FindAllStringSubmatch(tm[1], -1) {
			stamps = append(stamps, unescape(q[1]))
		}
		res.Timestamps = FilterTimestamps(stamps, videoDuration)
	}
	return res, true
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\n`, "\n")
	return s
}

// GenerateSummary produces a structured summary for a freshly analyzed video.
// A model or parse failure degrades to a minimal summary built from the
// transcript head rather than an error.
func (g *Generator) GenerateSummary(ctx context.Context, title, duration, transcript string) *domain.Summary {
	system, user := Resolve(summaryTemplate(), Vars{
		Title:         title,
		VideoDuration: duration,
		Transcript:    transcript,
	})

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.gen.GenerateText(ctx, system, user, ai.Options{Temperature: 0.4, JSONResponse: true})
	if err != nil {
		slog.Warn("summary generation failed", "title", title, "error", err)
		return fallbackSummary(transcript)
	}

	body, ok := extractJSON(raw)
	if !ok {
		return fallbackSummary(transcript)
	}
	var s domain.Summary
	if err := json.Unmarshal([]byte(body), &s); err != nil || s.Short == "" {
		return fallbackSummary(transcript)
	}
	for i := range s.KeyTakeaways {
		kept := FilterTimestamps([]string{s.KeyTakeaways[i].Timestamp}, duration)
		if len(kept) == 0 {
			s.KeyTakeaways[i].Timestamp = ""
		}
	}
	s.InsightCount = len(s.KeyTakeaways)
	s.ReadingTimeMinutes = readingTime(&s)
	return &s
}

func fallbackSummary(transcript string) *domain.Summary {
	short := strings.TrimSpace(transcript)
	if len(short) > 280 {
		short = short[:280] + "..."
	}
	if short == "" {
		short = "No transcript was available for this video."
	}
	return &domain.Summary{Short: short, ReadingTimeMinutes: 1}
}

func readingTime(s *domain.Summary) int {
	words := len(strings.Fields(s.Short))
	for _, sec := range s.Sections {
		for _, p := range sec.Points {
			words += len(strings.Fields(p))
		}
	}
	for _, t := range s.KeyTakeaways {
		words += len(strings.Fields(t.Insight))
	}
	minutes := words/200 + 1
	return minutes
}

// GeneratePlan builds a personalized plan from a video summary and a profile
// description.
func (g *Generator) GeneratePlan(ctx context.Context, title, videoContent, profileDescription string) (domain.PlanContent, error) {
	system, user := Resolve(planTemplate(), Vars{
		Title:      title,
		Transcript: videoContent,
		Context:    profileDescription,
	})

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.gen.GenerateText(ctx, system, user, ai.Options{Temperature: 0.5, JSONResponse: true})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.PlanContent{}, fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
		}
		return domain.PlanContent{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	body, ok := extractJSON(raw)
	if !ok {
		return domain.PlanContent{}, fmt.Errorf("%w: no JSON object in model output", ErrGeneration)
	}
	var plan domain.PlanContent
	if err := json.Unmarshal([]byte(body), &plan); err != nil {
		return domain.PlanContent{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(plan.Items) == 0 {
		return domain.PlanContent{}, fmt.Errorf("%w: empty plan", ErrGeneration)
	}
	return plan, nil
}

// GenerateQuickQuestions suggests four starter questions for a video. It
// never fails: any problem returns the fixed fallback set.
func (g *Generator) GenerateQuickQuestions(ctx context.Context, title, transcript string) []string {
	system, user := Resolve(quickQuestionsTemplate(), Vars{Title: title, Transcript: transcript})

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.gen.GenerateText(ctx, system, user, ai.Options{Temperature: 0.7, JSONResponse: true})
	if err != nil {
		return FallbackQuickQuestions
	}
	body, ok := extractJSON(raw)
	if !ok {
		return FallbackQuickQuestions
	}
	var payload struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil || len(payload.Questions) == 0 {
		return FallbackQuickQuestions
	}
	if len(payload.Questions) > 4 {
		payload.Questions = payload.Questions[:4]
	}
	return payload.Questions
}
