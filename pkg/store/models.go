package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID           string    `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

type VideoModel struct {
	ID           string         `gorm:"primaryKey"`
	YouTubeID    string         `gorm:"column:youtube_id;not null;index:idx_videos_owner_youtube"`
	OwnerID      string         `gorm:"index:idx_videos_owner_youtube"`
	Title        string         `gorm:"not null"`
	Channel      string
	Duration     string
	ViewCount    string
	ThumbnailURL string
	Transcript   string         `gorm:"type:text"`
	Segments     datatypes.JSON `gorm:"type:jsonb"`
	Summary      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"not null;index"`
}

type ChatMessageModel struct {
	ID         string         `gorm:"primaryKey"`
	VideoID    string         `gorm:"not null;index"`
	Message    string         `gorm:"type:text;not null"`
	Response   string         `gorm:"type:text;not null"`
	Timestamps datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"not null;index"`
}

type PromptConfigModel struct {
	ID                 string    `gorm:"primaryKey"`
	Name               string    `gorm:"uniqueIndex;not null"`
	Description        string
	SystemPrompt       string    `gorm:"type:text;not null"`
	UserPromptTemplate string    `gorm:"type:text;not null"`
	IsActive           bool      `gorm:"not null;index"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

type ProfileModel struct {
	ID          string    `gorm:"primaryKey"`
	UserID      string    `gorm:"uniqueIndex;not null"`
	Description string    `gorm:"type:text;not null"`
	DisplayName string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// Unique composite index collapses concurrent first-requests for the same
// (video, profile) pair to a single row; last write wins.
type PersonalizedPlanModel struct {
	ID        string         `gorm:"primaryKey"`
	VideoID   string         `gorm:"not null;uniqueIndex:idx_plans_video_profile"`
	ProfileID string         `gorm:"not null;uniqueIndex:idx_plans_video_profile"`
	Plan      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

type FeedbackModel struct {
	ID        string    `gorm:"primaryKey"`
	UserID    string    `gorm:"index"`
	Message   string    `gorm:"type:text;not null"`
	Reference string
	CreatedAt time.Time `gorm:"not null"`
}
