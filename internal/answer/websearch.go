package answer

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"vidsage/pkg/ai"
)

// Keyword classes that suggest a question reaches beyond the transcript.
var (
	competitiveTerms = []string{
		"competitor", "competitors", "alternative", "alternatives", "rival",
		"rivals", "versus", "vs", "compare", "comparison", "better than",
	}
	recencyTerms = []string{
		"latest", "newest", "recent", "current", "today", "this year",
		"2025", "2026", "up to date",
	}
	commercialTerms = []string{
		"price", "pricing", "cost", "subscription", "free tier", "discount",
		"cheapest", "buy", "purchase",
	}
	marketTerms = []string{
		"market", "industry", "trend", "trends", "adoption", "valuation",
		"funding", "revenue", "stock",
	}
	businessTerms = []string{
		"company", "product", "startup", "business", "vendor", "platform",
		"tool", "app",
	}
	// Present-tense qualifiers; kept out of recencyTerms so the
	// business-subject check below is the rule that matches them.
	currentlyTerms = []string{
		"nowadays", "currently", "right now", "these days",
	}
)

var interrogativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwho is \w+`),
	regexp.MustCompile(`(?i)\bwhat is \w+ doing\b`),
	regexp.MustCompile(`(?i)\bis there \w+`),
	regexp.MustCompile(`(?i)\bare there \w+`),
	regexp.MustCompile(`(?i)\bhow does \w+ compare\b`),
	regexp.MustCompile(`(?i)\bwhat are the .* options\b`),
	regexp.MustCompile(`(?i)\bwhat happened to \w+`),
	regexp.MustCompile(`(?i)\bis \w+ still\b`),
}

var wordBoundaryCache = map[string]*regexp.Regexp{}

func init() {
	for _, list := range [][]string{competitiveTerms, recencyTerms, commercialTerms, marketTerms, businessTerms, currentlyTerms} {
		for _, term := range list {
			wordBoundaryCache[term] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		}
	}
}

func containsAny(question string, terms []string) bool {
	for _, term := range terms {
		if wordBoundaryCache[term].MatchString(question) {
			return true
		}
	}
	return false
}

// NeedsWebSearch reports whether a question likely requires information that
// is not in the transcript, such as competitor sets, pricing, or anything
// time-sensitive. Questions about moments in the video never match.
func NeedsWebSearch(question string) bool {
	if strings.TrimSpace(question) == "" {
		return false
	}
	if containsAny(question, competitiveTerms) ||
		containsAny(question, recencyTerms) ||
		containsAny(question, commercialTerms) ||
		containsAny(question, marketTerms) {
		return true
	}
	for _, re := range interrogativePatterns {
		if re.MatchString(question) {
			return true
		}
	}
	// A business subject asked about in present tense is usually stale in
	// the transcript.
	if containsAny(question, businessTerms) && containsAny(question, currentlyTerms) {
		return true
	}
	return false
}

const webSearchSystem = `You provide current factual background information.
Answer concisely with concrete facts. If you genuinely do not know, say so briefly.`

// Phrases that mark a useless augmentation response.
var refusalPhrases = []string{
	"i cannot search",
	"i don't have access",
	"unable to search",
	"i don't have specific current information",
}

// FetchWebContext asks the model for supplementary background on a question.
// It returns "" whenever the result is unusable; callers treat augmentation
// as best effort and never fail the chat turn on it.
func FetchWebContext(ctx context.Context, gen ai.TextGenerator, question, videoTitle string) string {
	prompt := fmt.Sprintf("Provide current background information relevant to this question about the video %q:\n\n%s", videoTitle, question)
	out, err := gen.GenerateText(ctx, webSearchSystem, prompt, ai.Options{Temperature: 0.3})
	if err != nil {
		slog.Debug("web augmentation failed", "error", err)
		return ""
	}
	out = strings.TrimSpace(out)
	if len(out) < 50 {
		return ""
	}
	lower := strings.ToLower(out)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return ""
		}
	}
	return out
}
