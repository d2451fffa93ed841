package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidsage/pkg/domain"
	"vidsage/pkg/store"
)

// GeneratePlan returns the personalized plan for a (video, profile) pair,
// generating and caching it on first request. Set refresh to regenerate
// over an existing cached plan; the newest write wins.
func (a *App) GeneratePlan(ctx context.Context, user domain.User, videoID string, refresh bool) (domain.PersonalizedPlan, error) {
	video, err := a.GetVideo(user, videoID)
	if err != nil {
		return domain.PersonalizedPlan{}, err
	}
	profile, err := a.GetProfile(user)
	if err != nil {
		return domain.PersonalizedPlan{}, err
	}

	if !refresh {
		cached, ok, err := a.store.GetPlanByVideoProfile(video.ID, profile.ID)
		if err != nil {
			return domain.PersonalizedPlan{}, fmt.Errorf("lookup plan: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	content, err := a.gen.GeneratePlan(ctx, video.Title, planSource(video), profile.Description)
	if err != nil {
		return domain.PersonalizedPlan{}, err
	}

	plan := domain.PersonalizedPlan{
		ID:        store.NewID(),
		VideoID:   video.ID,
		ProfileID: profile.ID,
		Plan:      content,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.SavePlan(plan); err != nil {
		return domain.PersonalizedPlan{}, fmt.Errorf("save plan: %w", err)
	}
	return plan, nil
}

// planSource prefers the structured summary over the raw transcript so the
// plan prompt stays small.
func planSource(video domain.Video) string {
	if video.Summary != nil {
		if raw, err := json.Marshal(video.Summary); err == nil {
			return string(raw)
		}
	}
	return video.Transcript
}
