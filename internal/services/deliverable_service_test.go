package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/request_models"
	"studiocrm/pkg/utils"
)

func TestDeliverableGenerationStateMachine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creatorID := f.createCreator(t, "Glow Lab")

	created, err := f.deliverables.CreateDeliverable(ctx, operator(), request_models.CreateDeliverableRequest{
		CreatorID:       creatorID,
		DeliverableType: "Brand Guide",
	})
	if err != nil {
		t.Fatalf("CreateDeliverable: %v", err)
	}
	if created.Status != string(db_models.DeliverablePending) {
		t.Errorf("status = %s, want PENDING", created.Status)
	}
	if created.ContextData["brand_name"] != "Glow Lab" {
		t.Errorf("context_data = %v", created.ContextData)
	}
	if !strings.Contains(created.PromptUsed, "Brand Guide") || !strings.Contains(created.PromptUsed, "Glow Lab") {
		t.Errorf("default prompt = %q", created.PromptUsed)
	}
	id := mustUUID(t, created.ID)

	f.generator.err = errors.New("rate limited")
	if _, err := f.deliverables.Generate(ctx, operator(), id); !errors.Is(err, utils.ErrGenerationFailed) {
		t.Fatalf("failed generation err = %v", err)
	}
	failed, err := f.deliverables.GetDeliverable(ctx, id)
	if err != nil {
		t.Fatalf("GetDeliverable: %v", err)
	}
	if failed.Status != string(db_models.DeliverableFailed) || failed.ErrorMessage != "rate limited" {
		t.Errorf("after failure = %+v", failed)
	}

	f.generator.err = nil
	done, err := f.deliverables.Generate(ctx, operator(), id)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if done.Status != string(db_models.DeliverableCompleted) || done.GeneratedContent != "# Brand guide" || done.ErrorMessage != "" {
		t.Errorf("after retry = %+v", done)
	}
	if done.AIModel != "fake-model-1" {
		t.Errorf("ai_model = %q", done.AIModel)
	}
	if len(f.generator.prompts) != 2 || f.generator.prompts[1] != created.PromptUsed {
		t.Errorf("prompts sent = %v", f.generator.prompts)
	}

	if _, err := f.deliverables.Generate(ctx, operator(), id); !errors.Is(err, utils.ErrInvalidTransition) {
		t.Errorf("regenerate completed err = %v", err)
	}

	entries := f.entriesFor(t, id)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want one per generation attempt", len(entries))
	}
	for _, e := range entries {
		if e.ActionType != db_models.ActionGenerateDeliverable || e.TargetDisplay != "Brand Guide for Glow Lab" {
			t.Errorf("entry = %s %q", e.ActionType, e.TargetDisplay)
		}
	}
}

func TestDeliverableCustomPromptAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creatorID := f.createCreator(t, "Prompted")

	created, err := f.deliverables.CreateDeliverable(ctx, operator(), request_models.CreateDeliverableRequest{
		CreatorID:       creatorID,
		DeliverableType: "Launch Email",
		Prompt:          "Write a three line launch email.",
	})
	if err != nil {
		t.Fatalf("CreateDeliverable: %v", err)
	}
	if created.PromptUsed != "Write a three line launch email." {
		t.Errorf("prompt = %q", created.PromptUsed)
	}

	page, err := f.deliverables.ListDeliverables(ctx, request_models.DeliverableListQuery{Status: "pending"})
	if err != nil {
		t.Fatalf("ListDeliverables: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("pending total = %d", page.Total)
	}

	id := mustUUID(t, created.ID)
	if err := f.deliverables.DeleteDeliverable(ctx, id); err != nil {
		t.Fatalf("DeleteDeliverable: %v", err)
	}
	if _, err := f.deliverables.GetDeliverable(ctx, id); !errors.Is(err, utils.ErrDeliverableNotFound) {
		t.Errorf("get after delete err = %v", err)
	}
}

func TestStaleGenerationCanBeRetried(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creatorID := f.createCreator(t, "Stuck Co")

	created, err := f.deliverables.CreateDeliverable(ctx, operator(), request_models.CreateDeliverableRequest{
		CreatorID:       creatorID,
		DeliverableType: "Content Calendar",
	})
	if err != nil {
		t.Fatalf("CreateDeliverable: %v", err)
	}
	id := mustUUID(t, created.ID)

	// A process that died mid-generation leaves the row like this.
	started := f.clock.Now()
	if err := f.db.Model(&db_models.AIDeliverable{}).Where("id = ?", id).Updates(map[string]any{
		"status":                db_models.DeliverableGenerating,
		"generation_started_at": started,
	}).Error; err != nil {
		t.Fatalf("mark generating: %v", err)
	}

	f.clock.Advance(time.Minute)
	if _, err := f.deliverables.Generate(ctx, operator(), id); !errors.Is(err, utils.ErrInvalidTransition) {
		t.Fatalf("generate while in flight err = %v", err)
	}
	if len(f.generator.prompts) != 0 {
		t.Fatalf("provider called for an in-flight row")
	}

	f.clock.Advance(staleGenerationAfter)
	done, err := f.deliverables.Generate(ctx, operator(), id)
	if err != nil {
		t.Fatalf("generate stale row: %v", err)
	}
	if done.Status != string(db_models.DeliverableCompleted) {
		t.Errorf("status = %s, want COMPLETED", done.Status)
	}
}
