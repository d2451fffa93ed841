package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vidsage/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&UserModel{},
		&VideoModel{},
		&ChatMessageModel{},
		&PromptConfigModel{},
		&ProfileModel{},
		&PersonalizedPlanModel{},
		&FeedbackModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveUser registers or updates a user.
func (s *GormStore) SaveUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "password_hash", "role"}),
	}).Create(&model).Error
}

// HasUserEmail checks if email exists.
func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// UserCount returns number of users.
func (s *GormStore) UserCount() (int, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// SaveVideo stores or updates a video record.
func (s *GormStore) SaveVideo(v domain.Video) error {
	model, err := videoToModel(v)
	if err != nil {
		return err
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "channel", "duration", "view_count", "thumbnail_url", "transcript", "segments", "summary"}),
	}).Create(&model).Error
}

// GetVideo retrieves a video by ID.
func (s *GormStore) GetVideo(id string) (domain.Video, bool, error) {
	var model VideoModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Video{}, false, nil
		}
		return domain.Video{}, false, err
	}
	video, err := videoFromModel(model)
	if err != nil {
		return domain.Video{}, false, err
	}
	return video, true, nil
}

// GetVideoByYouTubeID finds the analysis a user already has for a platform id.
func (s *GormStore) GetVideoByYouTubeID(ownerID, youtubeID string) (domain.Video, bool, error) {
	var model VideoModel
	err := s.db.Where("owner_id = ? AND youtube_id = ?", ownerID, youtubeID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Video{}, false, nil
		}
		return domain.Video{}, false, err
	}
	video, err := videoFromModel(model)
	if err != nil {
		return domain.Video{}, false, err
	}
	return video, true, nil
}

// ListVideosByOwner returns videos filtered by owner, newest first.
func (s *GormStore) ListVideosByOwner(ownerID string) ([]domain.Video, error) {
	var models []VideoModel
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Video, 0, len(models))
	for _, m := range models {
		video, err := videoFromModel(m)
		if err != nil {
			return nil, err
		}
		res = append(res, video)
	}
	return res, nil
}

// DeleteVideo removes a video with its chat messages and plans.
func (s *GormStore) DeleteVideo(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&ChatMessageModel{}, "video_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&PersonalizedPlanModel{}, "video_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&VideoModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		return nil
	})
}

// AppendChatMessage records a chat turn.
func (s *GormStore) AppendChatMessage(msg domain.ChatMessage) error {
	model, err := chatMessageToModel(msg)
	if err != nil {
		return err
	}
	return s.db.Create(&model).Error
}

// ListChatMessages returns chat turns for a video in chronological order.
func (s *GormStore) ListChatMessages(videoID string) ([]domain.ChatMessage, error) {
	var models []ChatMessageModel
	if err := s.db.Where("video_id = ?", videoID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.ChatMessage, 0, len(models))
	for _, m := range models {
		msg, err := chatMessageFromModel(m)
		if err != nil {
			return nil, err
		}
		res = append(res, msg)
	}
	return res, nil
}

// SavePromptConfig stores or updates a prompt config.
func (s *GormStore) SavePromptConfig(cfg domain.PromptConfig) error {
	model := promptConfigToModel(cfg)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "system_prompt", "user_prompt_template", "updated_at"}),
	}).Create(&model).Error
}

// GetPromptConfig retrieves a prompt config by ID.
func (s *GormStore) GetPromptConfig(id string) (domain.PromptConfig, bool, error) {
	var model PromptConfigModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.PromptConfig{}, false, nil
		}
		return domain.PromptConfig{}, false, err
	}
	return promptConfigFromModel(model), true, nil
}

// GetPromptConfigByName retrieves a prompt config by its unique name.
func (s *GormStore) GetPromptConfigByName(name string) (domain.PromptConfig, bool, error) {
	var model PromptConfigModel
	if err := s.db.Where("name = ?", name).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.PromptConfig{}, false, nil
		}
		return domain.PromptConfig{}, false, err
	}
	return promptConfigFromModel(model), true, nil
}

// GetActivePromptConfig returns the single active config, if any.
func (s *GormStore) GetActivePromptConfig() (domain.PromptConfig, bool, error) {
	var model PromptConfigModel
	if err := s.db.Where("is_active = ?", true).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.PromptConfig{}, false, nil
		}
		return domain.PromptConfig{}, false, err
	}
	return promptConfigFromModel(model), true, nil
}

// ListPromptConfigs returns all configs ordered by creation time.
func (s *GormStore) ListPromptConfigs() ([]domain.PromptConfig, error) {
	var models []PromptConfigModel
	if err := s.db.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.PromptConfig, 0, len(models))
	for _, m := range models {
		res = append(res, promptConfigFromModel(m))
	}
	return res, nil
}

// DeletePromptConfig removes a config.
func (s *GormStore) DeletePromptConfig(id string) error {
	return s.db.Delete(&PromptConfigModel{}, "id = ?", id).Error
}

// ActivatePromptConfig deactivates all configs and activates one, in a
// single transaction so readers never observe two active rows.
func (s *GormStore) ActivatePromptConfig(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&PromptConfigModel{}).
			Where("is_active = ?", true).
			Updates(map[string]any{"is_active": false, "updated_at": time.Now().UTC()}).Error; err != nil {
			return err
		}
		res := tx.Model(&PromptConfigModel{}).
			Where("id = ?", id).
			Updates(map[string]any{"is_active": true, "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPromptConfigNotFound
		}
		return nil
	})
}

// SaveProfile stores or updates a user's profile.
func (s *GormStore) SaveProfile(p domain.Profile) error {
	model := profileToModel(p)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "display_name", "updated_at"}),
	}).Create(&model).Error
}

// GetProfile retrieves a profile by ID.
func (s *GormStore) GetProfile(id string) (domain.Profile, bool, error) {
	var model ProfileModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Profile{}, false, nil
		}
		return domain.Profile{}, false, err
	}
	return profileFromModel(model), true, nil
}

// GetProfileByUser retrieves the profile owned by a user.
func (s *GormStore) GetProfileByUser(userID string) (domain.Profile, bool, error) {
	var model ProfileModel
	if err := s.db.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Profile{}, false, nil
		}
		return domain.Profile{}, false, err
	}
	return profileFromModel(model), true, nil
}

// SavePlan stores a generated plan. On the (video, profile) conflict the
// newer plan replaces the older one.
func (s *GormStore) SavePlan(p domain.PersonalizedPlan) error {
	model, err := planToModel(p)
	if err != nil {
		return err
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}, {Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan"}),
	}).Create(&model).Error
}

// GetPlanByVideoProfile returns the cached plan for a pair, if any.
func (s *GormStore) GetPlanByVideoProfile(videoID, profileID string) (domain.PersonalizedPlan, bool, error) {
	var model PersonalizedPlanModel
	err := s.db.Where("video_id = ? AND profile_id = ?", videoID, profileID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.PersonalizedPlan{}, false, nil
		}
		return domain.PersonalizedPlan{}, false, err
	}
	plan, err := planFromModel(model)
	if err != nil {
		return domain.PersonalizedPlan{}, false, err
	}
	return plan, true, nil
}

// SaveFeedback records a feedback message.
func (s *GormStore) SaveFeedback(f domain.Feedback) error {
	model := feedbackToModel(f)
	return s.db.Create(&model).Error
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func videoToModel(v domain.Video) (VideoModel, error) {
	model := VideoModel{
		ID:           v.ID,
		YouTubeID:    v.YouTubeID,
		OwnerID:      v.OwnerID,
		Title:        v.Title,
		Channel:      v.Channel,
		Duration:     v.Duration,
		ViewCount:    v.ViewCount,
		ThumbnailURL: v.ThumbnailURL,
		Transcript:   v.Transcript,
		CreatedAt:    v.CreatedAt,
	}
	if len(v.Segments) > 0 {
		raw, err := json.Marshal(v.Segments)
		if err != nil {
			return VideoModel{}, fmt.Errorf("marshal segments: %w", err)
		}
		model.Segments = datatypes.JSON(raw)
	}
	if v.Summary != nil {
		raw, err := json.Marshal(v.Summary)
		if err != nil {
			return VideoModel{}, fmt.Errorf("marshal summary: %w", err)
		}
		model.Summary = datatypes.JSON(raw)
	}
	return model, nil
}

func videoFromModel(m VideoModel) (domain.Video, error) {
	video := domain.Video{
		ID:           m.ID,
		YouTubeID:    m.YouTubeID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Channel:      m.Channel,
		Duration:     m.Duration,
		ViewCount:    m.ViewCount,
		ThumbnailURL: m.ThumbnailURL,
		Transcript:   m.Transcript,
		CreatedAt:    m.CreatedAt,
	}
	if len(m.Segments) > 0 {
		if err := json.Unmarshal(m.Segments, &video.Segments); err != nil {
			return domain.Video{}, fmt.Errorf("unmarshal segments: %w", err)
		}
	}
	if len(m.Summary) > 0 {
		var summary domain.Summary
		if err := json.Unmarshal(m.Summary, &summary); err != nil {
			return domain.Video{}, fmt.Errorf("unmarshal summary: %w", err)
		}
		video.Summary = &summary
	}
	return video, nil
}

func chatMessageToModel(msg domain.ChatMessage) (ChatMessageModel, error) {
	model := ChatMessageModel{
		ID:        msg.ID,
		VideoID:   msg.VideoID,
		Message:   msg.Message,
		Response:  msg.Response,
		CreatedAt: msg.CreatedAt,
	}
	timestamps := msg.Timestamps
	if timestamps == nil {
		timestamps = []string{}
	}
	raw, err := json.Marshal(timestamps)
	if err != nil {
		return ChatMessageModel{}, fmt.Errorf("marshal timestamps: %w", err)
	}
	model.Timestamps = datatypes.JSON(raw)
	return model, nil
}

func chatMessageFromModel(m ChatMessageModel) (domain.ChatMessage, error) {
	msg := domain.ChatMessage{
		ID:         m.ID,
		VideoID:    m.VideoID,
		Message:    m.Message,
		Response:   m.Response,
		Timestamps: []string{},
		CreatedAt:  m.CreatedAt,
	}
	if len(m.Timestamps) > 0 {
		if err := json.Unmarshal(m.Timestamps, &msg.Timestamps); err != nil {
			return domain.ChatMessage{}, fmt.Errorf("unmarshal timestamps: %w", err)
		}
	}
	return msg, nil
}

func promptConfigToModel(cfg domain.PromptConfig) PromptConfigModel {
	return PromptConfigModel{
		ID:                 cfg.ID,
		Name:               cfg.Name,
		Description:        cfg.Description,
		SystemPrompt:       cfg.SystemPrompt,
		UserPromptTemplate: cfg.UserPromptTemplate,
		IsActive:           cfg.IsActive,
		CreatedAt:          cfg.CreatedAt,
		UpdatedAt:          cfg.UpdatedAt,
	}
}

func promptConfigFromModel(m PromptConfigModel) domain.PromptConfig {
	return domain.PromptConfig{
		ID:                 m.ID,
		Name:               m.Name,
		Description:        m.Description,
		SystemPrompt:       m.SystemPrompt,
		UserPromptTemplate: m.UserPromptTemplate,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func profileToModel(p domain.Profile) ProfileModel {
	return ProfileModel{
		ID:          p.ID,
		UserID:      p.UserID,
		Description: p.Description,
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func profileFromModel(m ProfileModel) domain.Profile {
	return domain.Profile{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		DisplayName: m.DisplayName,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func planToModel(p domain.PersonalizedPlan) (PersonalizedPlanModel, error) {
	raw, err := json.Marshal(p.Plan)
	if err != nil {
		return PersonalizedPlanModel{}, fmt.Errorf("marshal plan: %w", err)
	}
	return PersonalizedPlanModel{
		ID:        p.ID,
		VideoID:   p.VideoID,
		ProfileID: p.ProfileID,
		Plan:      datatypes.JSON(raw),
		CreatedAt: p.CreatedAt,
	}, nil
}

func planFromModel(m PersonalizedPlanModel) (domain.PersonalizedPlan, error) {
	plan := domain.PersonalizedPlan{
		ID:        m.ID,
		VideoID:   m.VideoID,
		ProfileID: m.ProfileID,
		CreatedAt: m.CreatedAt,
	}
	if err := json.Unmarshal(m.Plan, &plan.Plan); err != nil {
		return domain.PersonalizedPlan{}, fmt.Errorf("unmarshal plan: %w", err)
	}
	return plan, nil
}

func feedbackToModel(f domain.Feedback) FeedbackModel {
	return FeedbackModel{
		ID:        f.ID,
		UserID:    f.UserID,
		Message:   f.Message,
		Reference: f.Reference,
		CreatedAt: f.CreatedAt,
	}
}
