package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"studiocrm/internal/audit"
	"studiocrm/internal/models/request_models"
	"studiocrm/pkg/utils"
)

func TestDashboardCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stale := f.createCreator(t, "Stale")
	f.clock.Advance(20 * 24 * time.Hour)
	live := f.createCreator(t, "Live One")
	dormant := f.createCreator(t, "Dormant")

	if _, err := f.creators.UpdateJourneyStatus(ctx, operator(), live, "LIVE", ""); err != nil {
		t.Fatalf("UpdateJourneyStatus: %v", err)
	}
	if _, err := f.creators.UpdateCreator(ctx, operator(), dormant, request_models.UpdateCreatorRequest{
		IsActive: boolPtr(false),
	}); err != nil {
		t.Fatalf("UpdateCreator: %v", err)
	}
	if _, err := f.creators.RecomputeHealth(ctx, audit.System()); err != nil {
		t.Fatalf("RecomputeHealth: %v", err)
	}

	stats, err := f.dashboard.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalCreators != 3 || stats.ActiveCreators != 2 {
		t.Errorf("totals = %d/%d", stats.TotalCreators, stats.ActiveCreators)
	}
	if stats.OnboardingCount != 2 || stats.LiveCount != 1 || stats.ClosedCount != 0 {
		t.Errorf("status counts = %+v", stats)
	}
	if stats.RedHealthCount != 1 || stats.GreenHealthCount != 2 {
		t.Errorf("health counts = %+v", stats)
	}
	if len(stats.UrgentProjects) != 1 || stats.UrgentProjects[0].ID != stale.String() {
		t.Errorf("urgent = %+v", stats.UrgentProjects)
	}
	if len(stats.RecentUpdates) != 3 {
		t.Errorf("recent = %d", len(stats.RecentUpdates))
	}

	summary, err := f.dashboard.HealthSummary(ctx)
	if err != nil {
		t.Fatalf("HealthSummary: %v", err)
	}
	if summary.Red != 1 || summary.Yellow != 0 || summary.Green != 2 {
		t.Errorf("summary = %+v", summary)
	}

	byStatus, err := f.dashboard.StatusSummary(ctx)
	if err != nil {
		t.Fatalf("StatusSummary: %v", err)
	}
	if len(byStatus) != 6 || byStatus["PAUSED"] != 0 || byStatus["LIVE"] != 1 {
		t.Errorf("status summary = %v", byStatus)
	}
}

func TestAuditQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createCreator(t, "Audited")

	f.clock.Advance(time.Hour)
	if _, err := f.creators.UpdateJourneyStatus(ctx, operator(), id, "LAUNCH", ""); err != nil {
		t.Fatalf("UpdateJourneyStatus: %v", err)
	}

	byCreator, err := f.audits.ByCreator(ctx, id.String())
	if err != nil {
		t.Fatalf("ByCreator: %v", err)
	}
	if len(byCreator) != 2 || byCreator[0].ActionType != "UPDATE" {
		t.Errorf("by creator = %+v", byCreator)
	}

	page, err := f.audits.ListAuditLogs(ctx, request_models.AuditLogListQuery{ActionType: "create"})
	if err != nil {
		t.Fatalf("ListAuditLogs: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("CREATE total = %d", page.Total)
	}

	entry, err := f.audits.GetAuditLog(ctx, mustUUID(t, byCreator[1].ID))
	if err != nil {
		t.Fatalf("GetAuditLog: %v", err)
	}
	if entry.ActionType != "CREATE" {
		t.Errorf("entry = %+v", entry)
	}

	recent, err := f.audits.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("recent = %d", len(recent))
	}

	if _, err := f.audits.ByCreator(ctx, ""); !errors.Is(err, utils.ErrValidation) {
		t.Errorf("missing creator_id err = %v", err)
	}
}
