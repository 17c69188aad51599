package audit

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"studiocrm/internal/models/db_models"
)

const maxDisplayLen = 200

type trackedField struct {
	name  string
	value func(*db_models.Creator) string
}

// creatorTrackedFields is the allowlist for creator UPDATE diffs. Anything
// not listed here never shows up in an audit entry.
var creatorTrackedFields = []trackedField{
	{"journey_status", func(c *db_models.Creator) string { return string(c.JourneyStatus) }},
	{"health_score", func(c *db_models.Creator) string { return string(c.HealthScore) }},
	{"creator_email", func(c *db_models.Creator) string { return c.CreatorEmail }},
	{"brand_name", func(c *db_models.Creator) string { return c.BrandName }},
	{"is_active", func(c *db_models.Creator) string { return strconv.FormatBool(c.IsActive) }},
	{"priority_level", func(c *db_models.Creator) string { return strconv.Itoa(c.PriorityLevel) }},
}

// TrackedCreatorFields returns the allowlisted field names in order.
func TrackedCreatorFields() []string {
	names := make([]string, len(creatorTrackedFields))
	for i, f := range creatorTrackedFields {
		names[i] = f.name
	}
	return names
}

func newEntry(actor Actor, at time.Time, action db_models.ActionType, model string, id uuid.UUID, display string) *db_models.AuditLog {
	return &db_models.AuditLog{
		Timestamp:     at.UTC(),
		UserID:        actor.UserID,
		UserEmail:     actor.email(),
		IPAddress:     actor.ip(),
		ActionType:    action,
		TargetModel:   model,
		TargetID:      id,
		TargetDisplay: truncate(display, maxDisplayLen),
		Changes:       datatypes.JSONMap{},
	}
}

func CreatorCreated(actor Actor, at time.Time, c *db_models.Creator) *db_models.AuditLog {
	e := newEntry(actor, at, db_models.ActionCreate, db_models.TargetCreator, c.ID, c.DisplayName())
	e.Changes = datatypes.JSONMap{
		"created": map[string]any{
			"brand_name":     c.BrandName,
			"creator_name":   c.CreatorName,
			"journey_status": string(c.JourneyStatus),
		},
	}
	e.Notes = "New creator/brand added to system"
	return e
}

// CreatorDiff returns {"field": {"from", "to"}} for every allowlisted field that differs.
func CreatorDiff(before, after *db_models.Creator) map[string]any {
	changes := map[string]any{}
	for _, f := range creatorTrackedFields {
		from, to := f.value(before), f.value(after)
		if from != to {
			changes[f.name] = map[string]any{"from": from, "to": to}
		}
	}
	return changes
}

// CreatorUpdated returns nil when no allowlisted field changed.
func CreatorUpdated(actor Actor, at time.Time, before, after *db_models.Creator, notes string) *db_models.AuditLog {
	changes := CreatorDiff(before, after)
	if len(changes) == 0 {
		return nil
	}

	e := newEntry(actor, at, db_models.ActionUpdate, db_models.TargetCreator, after.ID, after.DisplayName())
	e.Changes = changes
	e.Notes = notes
	if e.Notes == "" {
		e.Notes = "Creator/brand record updated"
	}
	return e
}

func CreatorDeleted(actor Actor, at time.Time, c *db_models.Creator) *db_models.AuditLog {
	e := newEntry(actor, at, db_models.ActionDelete, db_models.TargetCreator, c.ID, c.DisplayName())
	e.Changes = datatypes.JSONMap{
		"deleted": map[string]any{
			"brand_name":   c.BrandName,
			"creator_name": c.CreatorName,
		},
	}
	e.Notes = "Creator/brand deleted from system"
	return e
}

var credentialNotes = map[db_models.ActionType]string{
	db_models.ActionCreate:         "Credential added",
	db_models.ActionUpdate:         "Credential updated",
	db_models.ActionDelete:         "Credential deleted",
	db_models.ActionViewCredential: "Credential secrets revealed",
}

// CredentialEvent records only the platform and account, never secret values.
// The credential's Creator should be loaded so the display carries the brand.
func CredentialEvent(actor Actor, at time.Time, action db_models.ActionType, cred *db_models.Credential) *db_models.AuditLog {
	e := newEntry(actor, at, action, db_models.TargetCredential, cred.ID, cred.DisplayName())
	e.Changes = datatypes.JSONMap{
		"platform": cred.PlatformName,
		"account":  cred.AccountIdentifier,
	}
	e.Notes = credentialNotes[action]
	return e
}

func DeliverableGenerated(actor Actor, at time.Time, d *db_models.AIDeliverable) *db_models.AuditLog {
	e := newEntry(actor, at, db_models.ActionGenerateDeliverable, db_models.TargetDeliverable, d.ID, d.DisplayName())
	e.Changes = datatypes.JSONMap{
		"deliverable_type": d.DeliverableType,
		"ai_model":         d.AIModel,
		"status":           string(d.Status),
	}
	if d.Creator != nil {
		e.Changes["creator_id"] = d.Creator.ID.String()
	}
	e.Notes = "AI deliverable generation"
	if d.Status == db_models.DeliverableFailed {
		e.Notes = "AI deliverable generation failed"
	}
	return e
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
