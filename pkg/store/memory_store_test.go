package store

import (
	"testing"
	"time"

	"vidsage/pkg/domain"
)

func TestActivatePromptConfigKeepsExactlyOneActive(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()
	a := domain.PromptConfig{ID: "cfg-a", Name: "A", SystemPrompt: "sys", UserPromptTemplate: "tpl", IsActive: true, CreatedAt: now, UpdatedAt: now}
	b := domain.PromptConfig{ID: "cfg-b", Name: "B", SystemPrompt: "sys", UserPromptTemplate: "tpl", CreatedAt: now, UpdatedAt: now}
	if err := s.SavePromptConfig(a); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := s.SavePromptConfig(b); err != nil {
		t.Fatalf("save b: %v", err)
	}

	if err := s.ActivatePromptConfig("cfg-b"); err != nil {
		t.Fatalf("activate b: %v", err)
	}

	gotA, _, _ := s.GetPromptConfig("cfg-a")
	gotB, _, _ := s.GetPromptConfig("cfg-b")
	if gotA.IsActive {
		t.Fatalf("expected a inactive after activating b")
	}
	if !gotB.IsActive {
		t.Fatalf("expected b active")
	}

	active, ok, err := s.GetActivePromptConfig()
	if err != nil || !ok {
		t.Fatalf("active config: ok=%v err=%v", ok, err)
	}
	if active.ID != "cfg-b" {
		t.Fatalf("unexpected active config: %s", active.ID)
	}
}

func TestActivateMissingPromptConfig(t *testing.T) {
	s := NewMemoryStore()
	if err := s.ActivatePromptConfig("nope"); err != ErrPromptConfigNotFound {
		t.Fatalf("expected ErrPromptConfigNotFound, got: %v", err)
	}
}

func TestDeleteVideoCascades(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()
	if err := s.SaveVideo(domain.Video{ID: "vid-1", YouTubeID: "yt-1", OwnerID: "user-1", Title: "t", CreatedAt: now}); err != nil {
		t.Fatalf("save video: %v", err)
	}
	if err := s.AppendChatMessage(domain.ChatMessage{ID: "msg-1", VideoID: "vid-1", Message: "q", Response: "a", CreatedAt: now}); err != nil {
		t.Fatalf("append message: %v", err)
	}
	if err := s.SavePlan(domain.PersonalizedPlan{ID: "plan-1", VideoID: "vid-1", ProfileID: "prof-1", CreatedAt: now}); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	if err := s.DeleteVideo("vid-1"); err != nil {
		t.Fatalf("delete video: %v", err)
	}

	if _, ok, _ := s.GetVideo("vid-1"); ok {
		t.Fatalf("video still present after delete")
	}
	msgs, _ := s.ListChatMessages("vid-1")
	if len(msgs) != 0 {
		t.Fatalf("chat messages not cascaded: %d left", len(msgs))
	}
	if _, ok, _ := s.GetPlanByVideoProfile("vid-1", "prof-1"); ok {
		t.Fatalf("plan not cascaded")
	}
}

func TestGetVideoByYouTubeIDScopedToOwner(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()
	_ = s.SaveVideo(domain.Video{ID: "vid-1", YouTubeID: "abc123xyz00", OwnerID: "user-1", Title: "mine", CreatedAt: now})
	_ = s.SaveVideo(domain.Video{ID: "vid-2", YouTubeID: "abc123xyz00", OwnerID: "user-2", Title: "theirs", CreatedAt: now})

	got, ok, err := s.GetVideoByYouTubeID("user-2", "abc123xyz00")
	if err != nil || !ok {
		t.Fatalf("lookup: ok=%v err=%v", ok, err)
	}
	if got.ID != "vid-2" {
		t.Fatalf("wrong video: %s", got.ID)
	}
	if _, ok, _ := s.GetVideoByYouTubeID("user-3", "abc123xyz00"); ok {
		t.Fatalf("expected no video for unknown owner")
	}
}

func TestPlanCacheLastWriteWins(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()
	first := domain.PersonalizedPlan{ID: "plan-1", VideoID: "vid-1", ProfileID: "prof-1", Plan: domain.PlanContent{QuickWins: []string{"one"}}, CreatedAt: now}
	second := domain.PersonalizedPlan{ID: "plan-2", VideoID: "vid-1", ProfileID: "prof-1", Plan: domain.PlanContent{QuickWins: []string{"two"}}, CreatedAt: now}
	_ = s.SavePlan(first)
	_ = s.SavePlan(second)

	got, ok, _ := s.GetPlanByVideoProfile("vid-1", "prof-1")
	if !ok {
		t.Fatalf("expected cached plan")
	}
	if len(got.Plan.QuickWins) != 1 || got.Plan.QuickWins[0] != "two" {
		t.Fatalf("expected last write to win, got: %+v", got.Plan.QuickWins)
	}
}

func TestListVideosByOwnerNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()
	_ = s.SaveVideo(domain.Video{ID: "vid-1", YouTubeID: "a", OwnerID: "user-1", CreatedAt: now})
	_ = s.SaveVideo(domain.Video{ID: "vid-2", YouTubeID: "b", OwnerID: "user-1", CreatedAt: now.Add(time.Second)})

	videos, err := s.ListVideosByOwner("user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(videos) != 2 || videos[0].ID != "vid-2" {
		t.Fatalf("unexpected order: %+v", videos)
	}
}
