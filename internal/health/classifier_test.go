package health

import (
	"fmt"
	"testing"
	"time"

	"studiocrm/internal/models/db_models"
)

var now = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.Add(-time.Duration(n) * 24 * time.Hour)
}

func TestClassifyRuleTable(t *testing.T) {
	tests := []struct {
		status db_models.JourneyStatus
		days   int
		want   db_models.HealthScore
	}{
		{db_models.JourneyOnboarding, 0, db_models.HealthGreen},
		{db_models.JourneyOnboarding, 7, db_models.HealthGreen},
		{db_models.JourneyOnboarding, 8, db_models.HealthYellow},
		{db_models.JourneyOnboarding, 14, db_models.HealthYellow},
		{db_models.JourneyOnboarding, 15, db_models.HealthRed},
		{db_models.JourneyOnboarding, 20, db_models.HealthRed},
		{db_models.JourneyBrandBuilding, 8, db_models.HealthYellow},
		{db_models.JourneyBrandBuilding, 15, db_models.HealthRed},
		{db_models.JourneyLaunch, 8, db_models.HealthGreen},
		{db_models.JourneyLaunch, 30, db_models.HealthGreen},
		{db_models.JourneyLaunch, 31, db_models.HealthRed},
		{db_models.JourneyLive, 30, db_models.HealthGreen},
		{db_models.JourneyLive, 31, db_models.HealthRed},
		{db_models.JourneyPaused, 7, db_models.HealthGreen},
		{db_models.JourneyPaused, 8, db_models.HealthYellow},
		{db_models.JourneyPaused, 30, db_models.HealthYellow},
		{db_models.JourneyPaused, 31, db_models.HealthRed},
		{db_models.JourneyClosed, 20, db_models.HealthGreen},
		{db_models.JourneyClosed, 45, db_models.HealthRed},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%dd", tt.status, tt.days), func(t *testing.T) {
			got := Classify(now, tt.status, daysAgo(tt.days), nil)
			if got != tt.want {
				t.Fatalf("Classify(%s, %d days) = %s, want %s", tt.status, tt.days, got, tt.want)
			}
		})
	}
}

func TestClassifyPartialDaysRoundDown(t *testing.T) {
	// 14 days and 23 hours is still 14 whole days.
	last := now.Add(-(14*24 + 23) * time.Hour)
	if got := Classify(now, db_models.JourneyOnboarding, last, nil); got != db_models.HealthYellow {
		t.Fatalf("got %s, want YELLOW", got)
	}
}

func TestClassifyFollowUp(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		status   db_models.JourneyStatus
		days     int
		followUp *time.Time
		want     db_models.HealthScore
	}{
		{"yesterday is overdue", db_models.JourneyLive, 1, &yesterday, db_models.HealthYellow},
		{"today is not overdue", db_models.JourneyLive, 1, &today, db_models.HealthGreen},
		{"tomorrow has no effect", db_models.JourneyLive, 1, &tomorrow, db_models.HealthGreen},
		{"red still wins", db_models.JourneyOnboarding, 20, &yesterday, db_models.HealthRed},
		{"tomorrow does not mask red", db_models.JourneyLive, 40, &tomorrow, db_models.HealthRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(now, tt.status, daysAgo(tt.days), tt.followUp)
			if got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFollowUpOverdueUsesUTCDates(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 2025-06-15 05:00 in UTC+9 is 2025-06-14 20:00 UTC, which is yesterday in UTC.
	followUp := time.Date(2025, 6, 15, 5, 0, 0, 0, loc)
	if !FollowUpOverdue(now, &followUp) {
		t.Fatal("expected follow-up to be overdue when compared on UTC dates")
	}
	if FollowUpOverdue(now, nil) {
		t.Fatal("nil follow-up must never be overdue")
	}
}
