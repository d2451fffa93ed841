package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vidsage/pkg/domain"
	"vidsage/pkg/store"
)

// ListPromptConfigs returns every admin template.
func (a *App) ListPromptConfigs() ([]domain.PromptConfig, error) {
	configs, err := a.store.ListPromptConfigs()
	if err != nil {
		return nil, fmt.Errorf("list prompt configs: %w", err)
	}
	return configs, nil
}

// CreatePromptConfig stores a new inactive admin template.
func (a *App) CreatePromptConfig(name, description, systemPrompt, userPromptTemplate string) (domain.PromptConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.PromptConfig{}, fmt.Errorf("name required")
	}
	if strings.TrimSpace(userPromptTemplate) == "" {
		return domain.PromptConfig{}, fmt.Errorf("user prompt template required")
	}
	now := time.Now().UTC()
	cfg := domain.PromptConfig{
		ID:                 store.NewID(),
		Name:               name,
		Description:        description,
		SystemPrompt:       systemPrompt,
		UserPromptTemplate: userPromptTemplate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := a.store.SavePromptConfig(cfg); err != nil {
		return domain.PromptConfig{}, fmt.Errorf("save prompt config: %w", err)
	}
	return cfg, nil
}

// UpdatePromptConfig edits an existing template. Active status is only
// changed through ActivatePromptConfig.
func (a *App) UpdatePromptConfig(id, name, description, systemPrompt, userPromptTemplate string) (domain.PromptConfig, error) {
	cfg, ok, err := a.store.GetPromptConfig(id)
	if err != nil {
		return domain.PromptConfig{}, fmt.Errorf("load prompt config: %w", err)
	}
	if !ok {
		return domain.PromptConfig{}, ErrPromptConfigNotFound
	}
	if name = strings.TrimSpace(name); name != "" {
		cfg.Name = name
	}
	if description != "" {
		cfg.Description = description
	}
	if systemPrompt != "" {
		cfg.SystemPrompt = systemPrompt
	}
	if strings.TrimSpace(userPromptTemplate) != "" {
		cfg.UserPromptTemplate = userPromptTemplate
	}
	cfg.UpdatedAt = time.Now().UTC()
	if err := a.store.SavePromptConfig(cfg); err != nil {
		return domain.PromptConfig{}, fmt.Errorf("save prompt config: %w", err)
	}
	return cfg, nil
}

// ActivatePromptConfig makes one template the active chat template and
// deactivates every other, atomically.
func (a *App) ActivatePromptConfig(id string) error {
	if err := a.store.ActivatePromptConfig(id); err != nil {
		if errors.Is(err, store.ErrPromptConfigNotFound) {
			return ErrPromptConfigNotFound
		}
		return fmt.Errorf("activate prompt config: %w", err)
	}
	return nil
}

// DeletePromptConfig removes a template. The active template cannot be
// deleted; chat must never lose its configured prompt out from under it.
func (a *App) DeletePromptConfig(id string) error {
	cfg, ok, err := a.store.GetPromptConfig(id)
	if err != nil {
		return fmt.Errorf("load prompt config: %w", err)
	}
	if !ok {
		return ErrPromptConfigNotFound
	}
	if cfg.IsActive {
		return ErrPromptConfigInUse
	}
	if err := a.store.DeletePromptConfig(id); err != nil {
		return fmt.Errorf("delete prompt config: %w", err)
	}
	return nil
}
