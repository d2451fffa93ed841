package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Video is one analyzed YouTube video. OwnerID is empty for analyses
// submitted without authentication.
type Video struct {
	ID           string              `json:"id"`
	YouTubeID    string              `json:"youtubeId"`
	OwnerID      string              `json:"ownerId,omitempty"`
	Title        string              `json:"title"`
	Channel      string              `json:"channel"`
	Duration     string              `json:"duration"`
	ViewCount    string              `json:"viewCount"`
	ThumbnailURL string              `json:"thumbnailUrl"`
	Transcript   string              `json:"transcript,omitempty"`
	Segments     []TranscriptSegment `json:"segments,omitempty"`
	Summary      *Summary            `json:"summary,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
}

type TranscriptSegment struct {
	Text          string `json:"text"`
	StartMs       int64  `json:"startMs"`
	EndMs         int64  `json:"endMs"`
	StartTimeText string `json:"startTimeText"`
}

// Summary is the structured analysis result the client renders as-is.
type Summary struct {
	Short              string           `json:"short"`
	Sections           []OutlineSection `json:"sections"`
	KeyTakeaways       []KeyTakeaway    `json:"keyTakeaways"`
	ActionableSteps    []ActionableStep `json:"actionableSteps"`
	ReadingTimeMinutes int              `json:"readingTimeMinutes"`
	InsightCount       int              `json:"insightCount"`
}

type OutlineSection struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// KeyTakeaway pairs a short insight with an optional source timestamp.
type KeyTakeaway struct {
	Insight   string `json:"insight"`
	Timestamp string `json:"timestamp,omitempty"`
}

type ActionableStep struct {
	Step     string `json:"step"`
	Priority int    `json:"priority"`
}

type ChatMessage struct {
	ID         string    `json:"id"`
	VideoID    string    `json:"videoId"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	Timestamps []string  `json:"timestamps"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PromptConfig is an admin-edited template pair. At most one config is
// active at a time; activation deactivates all others.
type PromptConfig struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	SystemPrompt       string    `json:"systemPrompt"`
	UserPromptTemplate string    `json:"userPromptTemplate"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type Profile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PersonalizedPlan caches the plan generated for a (video, profile) pair.
type PersonalizedPlan struct {
	ID        string      `json:"id"`
	VideoID   string      `json:"videoId"`
	ProfileID string      `json:"profileId"`
	Plan      PlanContent `json:"plan"`
	CreatedAt time.Time   `json:"createdAt"`
}

type PlanContent struct {
	Items     []PlanItem `json:"items"`
	QuickWins []string   `json:"quickWins"`
}

type PlanItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Effort      string `json:"effort"`
	Impact      string `json:"impact"`
	Target      string `json:"target"`
	Priority    int    `json:"priority"`
}

type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Message   string    `json:"message"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}
