package answer

import (
	"strings"

	"vidsage/pkg/domain"
)

// PromptTemplate is a (system prompt, user-prompt template) pair. The user
// template may contain ${name} placeholders from the fixed vocabulary.
type PromptTemplate struct {
	System string
	User   string
}

// Vars carries the runtime values substituted into a template. Zero values
// substitute as empty strings.
type Vars struct {
	Context       string
	Transcript    string
	VideoDuration string
	Question      string
	Title         string
	WebSearchInfo string
}

// QA is one prior question/answer turn used as conversation context.
type QA struct {
	Question string
	Answer   string
}

// Resolve fills the template's placeholders. It is total: missing values
// become empty strings and every vocabulary placeholder is always
// replaced, so no ${name} from the vocabulary survives in the output.
// Substitution is a plain string replace over a fixed whitelist; admin
// template text never reaches anything eval-like.
func Resolve(tpl PromptTemplate, vars Vars) (system, user string) {
	values := map[string]string{
		"context":       vars.Context,
		"transcript":    vars.Transcript,
		"videoDuration": vars.VideoDuration,
		"question":      vars.Question,
		"title":         vars.Title,
		"webSearchInfo": vars.WebSearchInfo,
	}
	return substitute(tpl.System, values), substitute(tpl.User, values)
}

func substitute(text string, values map[string]string) string {
	for name, value := range values {
		text = strings.ReplaceAll(text, "${"+name+"}", value)
	}
	return text
}

// RenderContext turns prior turns into the "Q: ...\nA: ..." block format
// stored admin templates expect in ${context}.
func RenderContext(turns []QA) string {
	if len(turns) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(turns))
	for _, turn := range turns {
		blocks = append(blocks, "Q: "+turn.Question+"\nA: "+turn.Answer)
	}
	return strings.Join(blocks, "\n\n")
}

// TemplateFromConfig adapts an admin-stored config to a PromptTemplate.
func TemplateFromConfig(cfg domain.PromptConfig) PromptTemplate {
	return PromptTemplate{
		System: cfg.SystemPrompt,
		User:   cfg.UserPromptTemplate,
	}
}
