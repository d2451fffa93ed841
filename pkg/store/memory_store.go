package store

import (
	"errors"
	"sync"
	"time"

	"vidsage/pkg/domain"
)

// ErrPromptConfigNotFound is returned when activating a missing config.
var ErrPromptConfigNotFound = errors.New("prompt config not found")

// MemoryStore keeps everything in-process. It backs tests and local runs
// without Postgres; production uses GormStore.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	email    map[string]string // email -> user ID
	videos   map[string]domain.Video
	order    []string // video insertion order
	chats    map[string][]domain.ChatMessage
	configs  map[string]domain.PromptConfig
	cfgOrder []string
	profiles map[string]domain.Profile
	plans    map[string]domain.PersonalizedPlan // key: videoID|profileID
	feedback []domain.Feedback
	sess     map[string]string // token -> user ID
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]domain.User),
		email:    make(map[string]string),
		videos:   make(map[string]domain.Video),
		chats:    make(map[string][]domain.ChatMessage),
		configs:  make(map[string]domain.PromptConfig),
		profiles: make(map[string]domain.Profile),
		plans:    make(map[string]domain.PersonalizedPlan),
		sess:     make(map[string]string),
	}
}

// SaveUser registers or replaces a user.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

// HasUserEmail checks if email exists.
func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.email[email]; ok {
		u, exists := m.users[id]
		return u, exists, nil
	}
	return domain.User{}, false, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// UserCount returns number of users.
func (m *MemoryStore) UserCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

// SaveVideo stores or replaces a video and tracks insertion order.
func (m *MemoryStore) SaveVideo(v domain.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.videos[v.ID]; !exists {
		m.order = append(m.order, v.ID)
	}
	m.videos[v.ID] = v
	return nil
}

// GetVideo retrieves a video by ID.
func (m *MemoryStore) GetVideo(id string) (domain.Video, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.videos[id]
	return v, ok, nil
}

// GetVideoByYouTubeID finds an owner's existing analysis for a platform id.
func (m *MemoryStore) GetVideoByYouTubeID(ownerID, youtubeID string) (domain.Video, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		v, ok := m.videos[id]
		if ok && v.OwnerID == ownerID && v.YouTubeID == youtubeID {
			return v, true, nil
		}
	}
	return domain.Video{}, false, nil
}

// ListVideosByOwner returns videos filtered by owner, newest first.
func (m *MemoryStore) ListVideosByOwner(ownerID string) ([]domain.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Video, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if v, ok := m.videos[m.order[i]]; ok && v.OwnerID == ownerID {
			res = append(res, v)
		}
	}
	return res, nil
}

// DeleteVideo removes a video, its chat history, and its plans.
func (m *MemoryStore) DeleteVideo(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.videos, id)
	delete(m.chats, id)
	for key, plan := range m.plans {
		if plan.VideoID == id {
			delete(m.plans, key)
		}
	}
	filtered := m.order[:0]
	for _, item := range m.order {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.order = filtered
	return nil
}

// AppendChatMessage records a chat turn linked to a video.
func (m *MemoryStore) AppendChatMessage(msg domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats[msg.VideoID] = append(m.chats[msg.VideoID], msg)
	return nil
}

// ListChatMessages returns chat turns for a video in insertion order.
func (m *MemoryStore) ListChatMessages(videoID string) ([]domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.chats[videoID]
	res := make([]domain.ChatMessage, len(msgs))
	copy(res, msgs)
	return res, nil
}

// SavePromptConfig stores or replaces a prompt config.
func (m *MemoryStore) SavePromptConfig(cfg domain.PromptConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.configs[cfg.ID]; !exists {
		m.cfgOrder = append(m.cfgOrder, cfg.ID)
	}
	m.configs[cfg.ID] = cfg
	return nil
}

// GetPromptConfig retrieves a config by ID.
func (m *MemoryStore) GetPromptConfig(id string) (domain.PromptConfig, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.configs[id]
	return cfg, ok, nil
}

// GetPromptConfigByName retrieves a config by name.
func (m *MemoryStore) GetPromptConfigByName(name string) (domain.PromptConfig, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.cfgOrder {
		if cfg, ok := m.configs[id]; ok && cfg.Name == name {
			return cfg, true, nil
		}
	}
	return domain.PromptConfig{}, false, nil
}

// GetActivePromptConfig returns the active config, if any.
func (m *MemoryStore) GetActivePromptConfig() (domain.PromptConfig, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.cfgOrder {
		if cfg, ok := m.configs[id]; ok && cfg.IsActive {
			return cfg, true, nil
		}
	}
	return domain.PromptConfig{}, false, nil
}

// ListPromptConfigs returns configs in insertion order.
func (m *MemoryStore) ListPromptConfigs() ([]domain.PromptConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.PromptConfig, 0, len(m.cfgOrder))
	for _, id := range m.cfgOrder {
		if cfg, ok := m.configs[id]; ok {
			res = append(res, cfg)
		}
	}
	return res, nil
}

// DeletePromptConfig removes a config.
func (m *MemoryStore) DeletePromptConfig(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.configs, id)
	filtered := m.cfgOrder[:0]
	for _, item := range m.cfgOrder {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.cfgOrder = filtered
	return nil
}

// ActivatePromptConfig deactivates every config then activates one,
// under a single lock so there is never more than one active config.
func (m *MemoryStore) ActivatePromptConfig(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target, ok := m.configs[id]
	if !ok {
		return ErrPromptConfigNotFound
	}
	now := time.Now().UTC()
	for key, cfg := range m.configs {
		if cfg.IsActive {
			cfg.IsActive = false
			cfg.UpdatedAt = now
			m.configs[key] = cfg
		}
	}
	target.IsActive = true
	target.UpdatedAt = now
	m.configs[id] = target
	return nil
}

// SaveProfile stores or replaces a profile.
func (m *MemoryStore) SaveProfile(p domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	return nil
}

// GetProfile retrieves a profile by ID.
func (m *MemoryStore) GetProfile(id string) (domain.Profile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	return p, ok, nil
}

// GetProfileByUser retrieves the profile owned by a user.
func (m *MemoryStore) GetProfileByUser(userID string) (domain.Profile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, true, nil
		}
	}
	return domain.Profile{}, false, nil
}

// SavePlan stores a plan keyed by (video, profile). Last write wins.
func (m *MemoryStore) SavePlan(p domain.PersonalizedPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[p.VideoID+"|"+p.ProfileID] = p
	return nil
}

// GetPlanByVideoProfile returns the cached plan for a pair, if any.
func (m *MemoryStore) GetPlanByVideoProfile(videoID, profileID string) (domain.PersonalizedPlan, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plans[videoID+"|"+profileID]
	return p, ok, nil
}

// SaveFeedback records a feedback message.
func (m *MemoryStore) SaveFeedback(f domain.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, f)
	return nil
}

// NewSession creates an opaque session token for a user.
func (m *MemoryStore) NewSession(userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := NewID()
	m.sess[token] = userID
	return token, nil
}

// GetUserIDByToken resolves a session token.
func (m *MemoryStore) GetUserIDByToken(token string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	uid, ok := m.sess[token]
	return uid, ok, nil
}

// DeleteSession removes a token mapping.
func (m *MemoryStore) DeleteSession(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sess, token)
	return nil
}
