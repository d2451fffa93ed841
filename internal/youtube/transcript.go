package youtube

import (
	"context"

	"vidsage/pkg/domain"
)

// Transcript bundles plain text and timed segments for one video.
type Transcript struct {
	Text     string
	Segments []domain.TranscriptSegment
}

// TranscriptProvider fetches the transcript for a video. Implementations
// must return an empty Transcript rather than an error when no transcript
// exists; a missing transcript never fails an analysis.
type TranscriptProvider interface {
	FetchTranscript(ctx context.Context, videoID string) (Transcript, error)
}

// PlaceholderTranscriptProvider stands in until a captions backend is
// wired up. It always returns an empty transcript.
type PlaceholderTranscriptProvider struct{}

// FetchTranscript returns an empty transcript for every video.
func (PlaceholderTranscriptProvider) FetchTranscript(_ context.Context, _ string) (Transcript, error) {
	return Transcript{}, nil
}
