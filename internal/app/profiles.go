package app

import (
	"fmt"
	"strings"
	"time"

	"vidsage/pkg/domain"
	"vidsage/pkg/store"
)

// GetProfile loads the caller's personalization profile.
func (a *App) GetProfile(user domain.User) (domain.Profile, error) {
	profile, ok, err := a.store.GetProfileByUser(user.ID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return domain.Profile{}, ErrProfileNotFound
	}
	return profile, nil
}

// SaveProfile creates or updates the caller's personalization profile from
// a free-text self description.
func (a *App) SaveProfile(user domain.User, description string) (domain.Profile, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return domain.Profile{}, ErrDescriptionRequired
	}

	now := time.Now().UTC()
	profile, ok, err := a.store.GetProfileByUser(user.ID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		profile = domain.Profile{
			ID:        store.NewID(),
			UserID:    user.ID,
			CreatedAt: now,
		}
	}
	profile.Description = description
	profile.DisplayName = displayName(description)
	profile.UpdatedAt = now
	if err := a.store.SaveProfile(profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// displayName derives a short label from the description: the first clause,
// capped at 50 characters on a rune boundary.
func displayName(description string) string {
	name := description
	if idx := strings.IndexAny(name, ".,\n"); idx > 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	runes := []rune(name)
	if len(runes) > 50 {
		name = strings.TrimSpace(string(runes[:50]))
	}
	return name
}
