package response_models

import (
	"time"

	"studiocrm/internal/models/db_models"
)

type AuditLogResponse struct {
	ID            string         `json:"id"`
	Timestamp     time.Time      `json:"timestamp"`
	UserID        *string        `json:"user_id"`
	UserEmail     string         `json:"user_email"`
	IPAddress     *string        `json:"ip_address"`
	ActionType    string         `json:"action_type"`
	TargetModel   string         `json:"target_model"`
	TargetID      string         `json:"target_id"`
	TargetDisplay string         `json:"target_display"`
	Changes       map[string]any `json:"changes"`
	Notes         string         `json:"notes"`
}

func NewAuditLogResponse(e *db_models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:            e.ID.String(),
		Timestamp:     e.Timestamp,
		UserID:        uuidString(e.UserID),
		UserEmail:     e.UserEmail,
		IPAddress:     e.IPAddress,
		ActionType:    string(e.ActionType),
		TargetModel:   e.TargetModel,
		TargetID:      e.TargetID.String(),
		TargetDisplay: e.TargetDisplay,
		Changes:       orEmptyMap(e.Changes),
		Notes:         e.Notes,
	}
}

func NewAuditLogResponses(entries []db_models.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewAuditLogResponse(&entries[i]))
	}
	return out
}
