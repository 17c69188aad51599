// Package health derives a creator's health score from its journey status and
// how long it has been sitting in that status.
package health

import (
	"time"

	"studiocrm/internal/models/db_models"
)

const day = 24 * time.Hour

// Staleness thresholds, in whole days since the last status change.
const (
	EarlyStageRedDays    = 14
	StaleRedDays         = 30
	PausedYellowDays     = 7
	EarlyStageYellowDays = 7
)

// DaysSince returns the number of whole days elapsed between from and now.
func DaysSince(now, from time.Time) int {
	return int(now.Sub(from) / day)
}

// Classify applies the rules in order; the first match wins.
func Classify(now time.Time, status db_models.JourneyStatus, lastStatusChange time.Time, nextFollowUp *time.Time) db_models.HealthScore {
	days := DaysSince(now, lastStatusChange)

	if days > EarlyStageRedDays && status.IsEarlyStage() {
		return db_models.HealthRed
	}
	if days > StaleRedDays {
		return db_models.HealthRed
	}
	if status == db_models.JourneyPaused && days > PausedYellowDays {
		return db_models.HealthYellow
	}
	if days > EarlyStageYellowDays && status.IsEarlyStage() {
		return db_models.HealthYellow
	}
	if FollowUpOverdue(now, nextFollowUp) {
		return db_models.HealthYellow
	}
	return db_models.HealthGreen
}

// FollowUpOverdue compares UTC calendar dates; a follow-up due today is not overdue.
func FollowUpOverdue(now time.Time, nextFollowUp *time.Time) bool {
	if nextFollowUp == nil || nextFollowUp.IsZero() {
		return false
	}
	return dateOf(*nextFollowUp).Before(dateOf(now))
}

func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
