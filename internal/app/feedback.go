package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vidsage/pkg/domain"
	"vidsage/pkg/store"
)

// SubmitFeedback records free-form feedback and returns a short reference
// code the user can quote in support conversations. userID is empty for
// anonymous submissions.
func (a *App) SubmitFeedback(userID, message string) (domain.Feedback, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.Feedback{}, ErrMessageRequired
	}
	fb := domain.Feedback{
		ID:        store.NewID(),
		UserID:    userID,
		Message:   message,
		Reference: "FB-" + strings.ToUpper(uuid.NewString()[:8]),
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.SaveFeedback(fb); err != nil {
		return domain.Feedback{}, fmt.Errorf("save feedback: %w", err)
	}
	return fb, nil
}
