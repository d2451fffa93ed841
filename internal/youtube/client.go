package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"vidsage/pkg/domain"
)

// ErrVideoNotFound indicates the platform has no video with that id.
var ErrVideoNotFound = errors.New("video not found")

// VideoInfo is everything the fetcher knows about a video, already in
// display form.
type VideoInfo struct {
	ID           string
	Title        string
	Channel      string
	Duration     string
	ViewCount    string
	ThumbnailURL string
	Transcript   string
	Segments     []domain.TranscriptSegment
}

// Client fetches video metadata from the YouTube Data API.
type Client struct {
	service     *youtube.Service
	transcripts TranscriptProvider
}

// NewClient builds an API-key authenticated client.
func NewClient(ctx context.Context, apiKey string, transcripts TranscriptProvider) (*Client, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init youtube service: %w", err)
	}
	if transcripts == nil {
		transcripts = PlaceholderTranscriptProvider{}
	}
	return &Client{service: service, transcripts: transcripts}, nil
}

// FetchVideo retrieves metadata and transcript for a video id. Metadata
// and transcript are fetched concurrently; a failed transcript fetch is
// logged and treated as "no transcript", a failed metadata fetch fails
// the whole call so a Video record is never partially populated.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (VideoInfo, error) {
	var (
		item       *youtube.Video
		transcript Transcript
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		call := c.service.Videos.
			List([]string{"snippet", "contentDetails", "statistics"}).
			Id(videoID).
			Context(gctx)
		resp, err := call.Do()
		if err != nil {
			return fmt.Errorf("youtube videos.list: %w", err)
		}
		if len(resp.Items) == 0 {
			return ErrVideoNotFound
		}
		item = resp.Items[0]
		return nil
	})
	g.Go(func() error {
		t, err := c.transcripts.FetchTranscript(gctx, videoID)
		if err != nil {
			slog.Warn("transcript fetch failed", "video_id", videoID, "err", err)
			return nil
		}
		transcript = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return VideoInfo{}, err
	}

	info := VideoInfo{
		ID:         videoID,
		Transcript: transcript.Text,
		Segments:   transcript.Segments,
	}
	if item.Snippet != nil {
		info.Title = item.Snippet.Title
		info.Channel = item.Snippet.ChannelTitle
		info.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
	}
	if item.ContentDetails != nil {
		info.Duration = FormatISODuration(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		info.ViewCount = FormatViewCount(item.Statistics.ViewCount)
	}
	return info, nil
}

// bestThumbnail prefers the highest resolution available.
func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}
