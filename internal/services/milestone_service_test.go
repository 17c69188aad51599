package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"studiocrm/internal/models/request_models"
	"studiocrm/pkg/utils"
)

func TestMilestoneCompletionSetsDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creatorID := f.createCreator(t, "Milestones")

	created, err := f.milestones.CreateMilestone(ctx, request_models.CreateMilestoneRequest{
		CreatorID:           creatorID,
		Title:               "Logo approved",
		TargetDate:          "2024-03-15",
		IsCompleted:         true,
		RelatedJourneyStage: "BRAND_BUILDING",
	})
	if err != nil {
		t.Fatalf("CreateMilestone: %v", err)
	}
	if created.CompletedDate != "2024-03-01" {
		t.Errorf("completed_date = %q, want today", created.CompletedDate)
	}

	open, err := f.milestones.CreateMilestone(ctx, request_models.CreateMilestoneRequest{
		CreatorID:           creatorID,
		Title:               "Store live",
		TargetDate:          "2024-04-01",
		RelatedJourneyStage: "LAUNCH",
	})
	if err != nil {
		t.Fatalf("CreateMilestone: %v", err)
	}
	if open.CompletedDate != "" {
		t.Errorf("open milestone has completed_date %q", open.CompletedDate)
	}

	f.clock.Advance(48 * time.Hour)
	done, err := f.milestones.MarkComplete(ctx, mustUUID(t, open.ID))
	if err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	if !done.IsCompleted || done.CompletedDate != "2024-03-03" {
		t.Errorf("mark complete = %+v", done)
	}

	reopened, err := f.milestones.UpdateMilestone(ctx, mustUUID(t, open.ID), request_models.UpdateMilestoneRequest{
		IsCompleted: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("UpdateMilestone: %v", err)
	}
	if reopened.IsCompleted || reopened.CompletedDate != "2024-03-03" {
		t.Errorf("reopened = %+v", reopened)
	}

	f.clock.Advance(24 * time.Hour)
	again, err := f.milestones.MarkComplete(ctx, mustUUID(t, open.ID))
	if err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	if !again.IsCompleted || again.CompletedDate != "2024-03-04" {
		t.Errorf("completing a reopened milestone = %+v, want today's date", again)
	}

	dated, err := f.milestones.CreateMilestone(ctx, request_models.CreateMilestoneRequest{
		CreatorID:           creatorID,
		Title:               "Samples shipped",
		TargetDate:          "2024-03-10",
		CompletedDate:       "2024-02-20",
		RelatedJourneyStage: "LAUNCH",
	})
	if err != nil {
		t.Fatalf("CreateMilestone: %v", err)
	}
	if dated.IsCompleted || dated.CompletedDate != "2024-02-20" {
		t.Fatalf("dated milestone = %+v", dated)
	}
	stamped, err := f.milestones.MarkComplete(ctx, mustUUID(t, dated.ID))
	if err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	if !stamped.IsCompleted || stamped.CompletedDate != "2024-03-04" {
		t.Errorf("mark complete kept %q, want 2024-03-04", stamped.CompletedDate)
	}
}

func TestMilestoneListingAndValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creatorID := f.createCreator(t, "Ordering")

	for _, m := range []request_models.CreateMilestoneRequest{
		{CreatorID: creatorID, Title: "Later", TargetDate: "2024-06-01", RelatedJourneyStage: "LIVE"},
		{CreatorID: creatorID, Title: "Sooner", TargetDate: "2024-04-01", RelatedJourneyStage: "LAUNCH"},
	} {
		if _, err := f.milestones.CreateMilestone(ctx, m); err != nil {
			t.Fatalf("CreateMilestone: %v", err)
		}
	}

	list, err := f.milestones.ListByCreator(ctx, creatorID.String())
	if err != nil {
		t.Fatalf("ListByCreator: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Sooner" {
		t.Errorf("list = %+v", list)
	}

	page, err := f.milestones.ListMilestones(ctx, request_models.MilestoneListQuery{RelatedJourneyStage: "live"})
	if err != nil {
		t.Fatalf("ListMilestones: %v", err)
	}
	if page.Total != 1 || page.Items[0].Title != "Later" {
		t.Errorf("stage filter = %+v", page.Items)
	}

	if _, err := f.milestones.ListByCreator(ctx, ""); !errors.Is(err, utils.ErrValidation) {
		t.Errorf("missing creator_id err = %v", err)
	}
	if _, err := f.milestones.CreateMilestone(ctx, request_models.CreateMilestoneRequest{
		CreatorID:           creatorID,
		Title:               "Bad date",
		TargetDate:          "01/04/2024",
		RelatedJourneyStage: "LIVE",
	}); !errors.Is(err, utils.ErrValidation) {
		t.Errorf("bad date err = %v", err)
	}
	if _, err := f.milestones.GetMilestone(ctx, creatorID); !errors.Is(err, utils.ErrMilestoneNotFound) {
		t.Errorf("unknown milestone err = %v", err)
	}
}
