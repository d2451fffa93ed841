package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vidsage/internal/answer"
	"vidsage/pkg/domain"
	"vidsage/pkg/store"
)

// Chat answers a free-form question about a video and appends the turn to
// the video's chat history.
func (a *App) Chat(ctx context.Context, user domain.User, videoID, message string) (domain.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ChatMessage{}, ErrMessageRequired
	}
	video, err := a.GetVideo(user, videoID)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	tpl := a.chatTemplate()
	vars := answer.Vars{
		Title:         video.Title,
		VideoDuration: video.Duration,
		Transcript:    video.Transcript,
		Question:      message,
		Context:       a.renderHistory(video.ID),
		WebSearchInfo: a.webContext(ctx, message, video.Title),
	}

	res, err := a.gen.Answer(ctx, tpl, vars)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	turn := domain.ChatMessage{
		ID:         store.NewID(),
		VideoID:    video.ID,
		Message:    message,
		Response:   res.Answer,
		Timestamps: res.Timestamps,
		CreatedAt:  time.Now().UTC(),
	}
	if err := a.store.AppendChatMessage(turn); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("save chat message: %w", err)
	}
	return turn, nil
}

// QuickAction runs one of the predefined one-click prompts against a video.
// An admin config whose name matches the action label overrides the
// built-in template. The turn is not added to chat history.
func (a *App) QuickAction(ctx context.Context, user domain.User, videoID, action string) (answer.Result, error) {
	video, err := a.GetVideo(user, videoID)
	if err != nil {
		return answer.Result{}, err
	}

	var tpl answer.PromptTemplate
	if cfg, ok, err := a.store.GetPromptConfigByName(action); err == nil && ok {
		tpl = answer.TemplateFromConfig(cfg)
	} else if builtin, ok := answer.QuickActionTemplate(action); ok {
		tpl = builtin
	} else {
		return answer.Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	vars := answer.Vars{
		Title:         video.Title,
		VideoDuration: video.Duration,
		Transcript:    video.Transcript,
		Question:      action,
	}
	return a.gen.Answer(ctx, tpl, vars)
}

// QuickQuestions returns four suggested starter questions for a video. The
// set is cached per video so repeat visits do not cost a model call.
func (a *App) QuickQuestions(ctx context.Context, user domain.User, videoID string) ([]string, error) {
	video, err := a.GetVideo(user, videoID)
	if err != nil {
		return nil, err
	}

	if cached, ok := a.cachedQuickQuestions(ctx, video.ID); ok {
		return cached, nil
	}
	questions := a.gen.GenerateQuickQuestions(ctx, video.Title, video.Transcript)
	a.cacheQuickQuestions(ctx, video.ID, questions)
	return questions, nil
}

// ChatHistory lists the chat turns for a video in chronological order.
func (a *App) ChatHistory(user domain.User, videoID string) ([]domain.ChatMessage, error) {
	video, err := a.GetVideo(user, videoID)
	if err != nil {
		return nil, err
	}
	messages, err := a.store.ListChatMessages(video.ID)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return messages, nil
}

// chatTemplate prefers the active admin config over the built-in default.
func (a *App) chatTemplate() answer.PromptTemplate {
	cfg, ok, err := a.store.GetActivePromptConfig()
	if err != nil {
		slog.Warn("load active prompt config failed", "error", err)
		return answer.DefaultChatTemplate()
	}
	if !ok {
		return answer.DefaultChatTemplate()
	}
	return answer.TemplateFromConfig(cfg)
}

// renderHistory builds the conversation context block from the most recent
// turns. History load failures degrade to an empty context.
func (a *App) renderHistory(videoID string) string {
	messages, err := a.store.ListChatMessages(videoID)
	if err != nil {
		slog.Warn("load chat history failed", "video", videoID, "error", err)
		return ""
	}
	if len(messages) > a.contextWindow {
		messages = messages[len(messages)-a.contextWindow:]
	}
	turns := make([]answer.QA, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, answer.QA{Question: msg.Message, Answer: msg.Response})
	}
	return answer.RenderContext(turns)
}

// webContext fetches supplementary background when the question needs it.
// Augmentation is best effort and never fails the chat turn.
func (a *App) webContext(ctx context.Context, question, videoTitle string) string {
	if !a.webSearchEnabled || !answer.NeedsWebSearch(question) {
		return ""
	}
	info := answer.FetchWebContext(ctx, a.textGen, question, videoTitle)
	if info == "" {
		return ""
	}
	return "Supplementary background information:\n" + info
}

const quickQuestionsTTL = 24 * time.Hour

func quickQuestionsKey(videoID string) string {
	return "vidsage:quickq:" + videoID
}

func (a *App) cachedQuickQuestions(ctx context.Context, videoID string) ([]string, bool) {
	if a.redis == nil {
		return nil, false
	}
	raw, err := a.redis.Get(ctx, quickQuestionsKey(videoID)).Result()
	if err != nil {
		return nil, false
	}
	var questions []string
	if err := json.Unmarshal([]byte(raw), &questions); err != nil || len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

func (a *App) cacheQuickQuestions(ctx context.Context, videoID string, questions []string) {
	if a.redis == nil {
		return
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return
	}
	if err := a.redis.Set(ctx, quickQuestionsKey(videoID), raw, quickQuestionsTTL).Err(); err != nil {
		slog.Debug("cache quick questions failed", "video", videoID, "error", err)
	}
}

func (a *App) invalidateQuickQuestions(ctx context.Context, videoID string) {
	if a.redis == nil {
		return
	}
	if err := a.redis.Del(ctx, quickQuestionsKey(videoID)).Err(); err != nil {
		slog.Debug("invalidate quick questions failed", "video", videoID, "error", err)
	}
}
