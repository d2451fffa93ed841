package store

import "vidsage/pkg/domain"

// Store defines persistence operations for users, videos, chat history,
// prompt configs, profiles, plans, and feedback.
type Store interface {
	// users
	SaveUser(domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)
	UserCount() (int, error)

	// videos
	SaveVideo(domain.Video) error
	GetVideo(id string) (domain.Video, bool, error)
	GetVideoByYouTubeID(ownerID, youtubeID string) (domain.Video, bool, error)
	ListVideosByOwner(ownerID string) ([]domain.Video, error)
	DeleteVideo(id string) error

	// chat
	AppendChatMessage(domain.ChatMessage) error
	ListChatMessages(videoID string) ([]domain.ChatMessage, error)

	// prompt configs
	SavePromptConfig(domain.PromptConfig) error
	GetPromptConfig(id string) (domain.PromptConfig, bool, error)
	GetPromptConfigByName(name string) (domain.PromptConfig, bool, error)
	GetActivePromptConfig() (domain.PromptConfig, bool, error)
	ListPromptConfigs() ([]domain.PromptConfig, error)
	DeletePromptConfig(id string) error
	ActivatePromptConfig(id string) error

	// profiles
	SaveProfile(domain.Profile) error
	GetProfile(id string) (domain.Profile, bool, error)
	GetProfileByUser(userID string) (domain.Profile, bool, error)

	// plans
	SavePlan(domain.PersonalizedPlan) error
	GetPlanByVideoProfile(videoID, profileID string) (domain.PersonalizedPlan, bool, error)

	// feedback
	SaveFeedback(domain.Feedback) error
}

// SessionStore persists session tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
