package response_models

import (
	"time"

	"studiocrm/internal/models/db_models"
	"studiocrm/pkg/utils"
)

type MilestoneResponse struct {
	ID                  string    `json:"id"`
	CreatorID           string    `json:"creator_id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	TargetDate          string    `json:"target_date,omitempty"`
	CompletedDate       string    `json:"completed_date,omitempty"`
	IsCompleted         bool      `json:"is_completed"`
	RelatedJourneyStage string    `json:"related_journey_stage"`
	CreatedAt           time.Time `json:"created_at"`
}

func NewMilestoneResponse(m *db_models.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:                  m.ID.String(),
		CreatorID:           m.CreatorID.String(),
		Title:               m.Title,
		Description:         m.Description,
		TargetDate:          utils.FormatDate(m.TargetDate),
		CompletedDate:       utils.FormatDate(m.CompletedDate),
		IsCompleted:         m.IsCompleted,
		RelatedJourneyStage: string(m.RelatedJourneyStage),
		CreatedAt:           m.CreatedAt,
	}
}
