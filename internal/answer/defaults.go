package answer

// Built-in templates used when no admin config is active. The placeholder
// vocabulary matches what stored admin configs use, so the two sources are
// interchangeable at resolution time.

const defaultChatSystem = `You are a helpful assistant answering questions about a YouTube video.
You have the video transcript and metadata. Answer from the video content first;
when supplementary background information is provided, weave it in and say so.
Respond with a JSON object of the form:
{"answer": "your answer", "timestamps": ["MM:SS"]}
Only reference timestamps that exist within the video duration of ${videoDuration}.
If no specific moment applies, return an empty timestamps array.`

const defaultChatUser = `Video title: ${title}
Video duration: ${videoDuration}

Transcript:
${transcript}

Previous conversation:
${context}

${webSearchInfo}

Question: ${question}`

// DefaultChatTemplate returns the built-in free-form chat template.
func DefaultChatTemplate() PromptTemplate {
	return PromptTemplate{System: defaultChatSystem, User: defaultChatUser}
}

// Quick-action labels the client offers as one-click buttons.
const (
	ActionShorterSummary   = "Shorter Summary"
	ActionDetailedAnalysis = "Detailed Analysis"
	ActionActionItems      = "Action Items"
	ActionKeyQuotes        = "Key Quotes"
)

var quickActionTemplates = map[string]PromptTemplate{
	ActionShorterSummary: {
		System: defaultChatSystem,
		User: `Video title: ${title}
Video duration: ${videoDuration}

Transcript:
${transcript}

Condense this video into a 2-3 sentence summary. Focus on the single main
point and the key takeaway. Maximum 60 words.`,
	},
	ActionDetailedAnalysis: {
		System: defaultChatSystem,
		User: `Video title: ${title}
Video duration: ${videoDuration}

Transcript:
${transcript}

Provide a detailed analysis of this video: the main arguments, the evidence
offered for each, and where the reasoning is strong or weak. Reference the
moments you discuss with timestamps.`,
	},
	ActionActionItems: {
		System: defaultChatSystem,
		User: `Video title: ${title}
Video duration: ${videoDuration}

Transcript:
${transcript}

Extract the concrete action items a viewer could apply from this video.
List each as one imperative sentence, most impactful first.`,
	},
	ActionKeyQuotes: {
		System: defaultChatSystem,
		User: `Video title: ${title}
Video duration: ${videoDuration}

Transcript:
${transcript}

Best quotes from this video: pick the 3-5 most memorable verbatim quotes,
each with the timestamp where it is said.`,
	},
}

// QuickActionTemplate returns the built-in fallback template for a label.
func QuickActionTemplate(label string) (PromptTemplate, bool) {
	tpl, ok := quickActionTemplates[label]
	return tpl, ok
}

// QuickActionLabels lists the supported one-click actions.
func QuickActionLabels() []string {
	return []string{ActionShorterSummary, ActionDetailedAnalysis, ActionActionItems, ActionKeyQuotes}
}

const quickQuestionsSystem = `You suggest questions a curious viewer would ask about a YouTube video.
Respond with a JSON object: {"questions": ["q1", "q2", "q3", "q4"]}.`

const quickQuestionsUser = `Video title: ${title}

Transcript:
${transcript}

Suggest exactly 4 short, specific questions about this video's content.`

func quickQuestionsTemplate() PromptTemplate {
	return PromptTemplate{System: quickQuestionsSystem, User: quickQuestionsUser}
}

// FallbackQuickQuestions is served when generation fails.
var FallbackQuickQuestions = []string{
	"What are the main points of this video?",
	"What is the most important takeaway?",
	"Can you summarize the conclusion?",
	"What examples does the video use?",
}

const summarySystem = `You analyze YouTube video transcripts and produce structured summaries.
Respond with a JSON object of the form:
{
  "short": "2-3 sentence summary",
  "sections": [{"title": "section title", "points": ["point"]}],
  "keyTakeaways": [{"insight": "insight text", "timestamp": "MM:SS"}],
  "actionableSteps": [{"step": "imperative step", "priority": 1}]
}
Only reference timestamps within the video duration of ${videoDuration}.
Keep takeaways non-obvious and practically useful.`

const summaryUser = `Video title: ${title}
Video duration: ${videoDuration}

Transcript:
${transcript}

Produce the structured summary.`

func summaryTemplate() PromptTemplate {
	return PromptTemplate{System: summarySystem, User: summaryUser}
}

const planSystem = `You create personalized action plans from YouTube video summaries.
Tailor every item to the person described. Respond with a JSON object:
{
  "items": [{"title": "t", "description": "d", "effort": "low|medium|high",
             "impact": "low|medium|high", "target": "a measurable target", "priority": 1}],
  "quickWins": ["something doable today"]
}`

const planUser = `Video title: ${title}

Video content:
${transcript}

About the person:
${context}

Create a prioritized action plan with 3-5 items and 2-3 quick wins.`

func planTemplate() PromptTemplate {
	return PromptTemplate{System: planSystem, User: planUser}
}
