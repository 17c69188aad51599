package response_models

import (
	"time"

	"studiocrm/internal/models/db_models"
)

type DeliverableResponse struct {
	ID               string         `json:"id"`
	CreatorID        string         `json:"creator_id"`
	BrandName        string         `json:"brand_name,omitempty"`
	DeliverableType  string         `json:"deliverable_type"`
	PromptUsed       string         `json:"prompt_used"`
	ContextData      map[string]any `json:"context_data"`
	AIModel          string         `json:"ai_model"`
	GeneratedContent string         `json:"generated_content"`
	FileURL          string         `json:"file_url"`
	Status           string         `json:"status"`
	ErrorMessage     string         `json:"error_message"`
	CreatedByID      *string        `json:"created_by_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func NewDeliverableResponse(d *db_models.AIDeliverable) DeliverableResponse {
	r := DeliverableResponse{
		ID:               d.ID.String(),
		CreatorID:        d.CreatorID.String(),
		DeliverableType:  d.DeliverableType,
		PromptUsed:       d.PromptUsed,
		ContextData:      orEmptyMap(d.ContextData),
		AIModel:          d.AIModel,
		GeneratedContent: d.GeneratedContent,
		FileURL:          d.FileURL,
		Status:           string(d.Status),
		ErrorMessage:     d.ErrorMessage,
		CreatedByID:      uuidString(d.CreatedByID),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.Creator != nil {
		r.BrandName = d.Creator.BrandName
	}
	return r
}
