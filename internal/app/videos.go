package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vidsage/internal/youtube"
	"vidsage/pkg/domain"
	"vidsage/pkg/store"
)

// AnalyzeVideo resolves a URL or bare id to a video, fetches its metadata
// and transcript, generates a structured summary, and persists the result.
// Re-analyzing a video the caller already has returns the stored record.
// ownerID is empty for unauthenticated callers.
func (a *App) AnalyzeVideo(ctx context.Context, ownerID, rawURL string) (domain.Video, error) {
	youtubeID, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		return domain.Video{}, ErrInvalidURL
	}

	existing, found, err := a.store.GetVideoByYouTubeID(ownerID, youtubeID)
	if err != nil {
		return domain.Video{}, fmt.Errorf("lookup video: %w", err)
	}
	if found {
		return existing, nil
	}

	info, err := a.fetcher.FetchVideo(ctx, youtubeID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			return domain.Video{}, ErrVideoNotFound
		}
		return domain.Video{}, fmt.Errorf("fetch video: %w", err)
	}

	summary := a.gen.GenerateSummary(ctx, info.Title, info.Duration, info.Transcript)

	video := domain.Video{
		ID:           store.NewID(),
		YouTubeID:    youtubeID,
		OwnerID:      ownerID,
		Title:        info.Title,
		Channel:      info.Channel,
		Duration:     info.Duration,
		ViewCount:    info.ViewCount,
		ThumbnailURL: info.ThumbnailURL,
		Transcript:   info.Transcript,
		Segments:     info.Segments,
		Summary:      summary,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.store.SaveVideo(video); err != nil {
		return domain.Video{}, fmt.Errorf("save video: %w", err)
	}

	if a.archive != nil && video.Transcript != "" {
		if err := a.archive.ArchiveTranscript(ctx, video.ID, video.Transcript); err != nil {
			slog.Warn("transcript archive failed", "video", video.ID, "error", err)
		}
	}
	return video, nil
}

// GetVideo loads a video the user may access. Videos analyzed without an
// owner are readable by anyone; owned videos only by their owner or an
// admin.
func (a *App) GetVideo(user domain.User, videoID string) (domain.Video, error) {
	video, ok, err := a.store.GetVideo(videoID)
	if err != nil {
		return domain.Video{}, fmt.Errorf("load video: %w", err)
	}
	if !ok {
		return domain.Video{}, ErrVideoNotFound
	}
	if video.OwnerID != "" && video.OwnerID != user.ID && user.Role != domain.RoleAdmin {
		return domain.Video{}, ErrVideoForbidden
	}
	return video, nil
}

// ListVideos returns the user's analyzed videos, newest first.
func (a *App) ListVideos(user domain.User) ([]domain.Video, error) {
	videos, err := a.store.ListVideosByOwner(user.ID)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// TranscriptURL returns a short-lived download link for the archived raw
// transcript of a video.
func (a *App) TranscriptURL(ctx context.Context, user domain.User, videoID string) (string, error) {
	if a.archive == nil {
		return "", ErrVideoNotFound
	}
	video, err := a.GetVideo(user, videoID)
	if err != nil {
		return "", err
	}
	if video.Transcript == "" {
		return "", ErrVideoNotFound
	}
	url, err := a.archive.TranscriptURL(ctx, video.ID, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("presign transcript: %w", err)
	}
	return url, nil
}

// DeleteVideo removes a video along with its chat history and cached plans.
func (a *App) DeleteVideo(ctx context.Context, user domain.User, videoID string) error {
	video, err := a.GetVideo(user, videoID)
	if err != nil {
		return err
	}
	if err := a.store.DeleteVideo(video.ID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if a.archive != nil {
		if err := a.archive.DeleteTranscript(ctx, video.ID); err != nil {
			slog.Warn("transcript archive delete failed", "video", video.ID, "error", err)
		}
	}
	a.invalidateQuickQuestions(ctx, video.ID)
	return nil
}
