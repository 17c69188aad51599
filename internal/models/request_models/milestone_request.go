package request_models

import "github.com/google/uuid"

type CreateMilestoneRequest struct {
	CreatorID           uuid.UUID `json:"creator_id" binding:"required"`
	Title               string    `json:"title" binding:"required,max=200"`
	Description         string    `json:"description"`
	TargetDate          string    `json:"target_date"`
	CompletedDate       string    `json:"completed_date"`
	IsCompleted         bool      `json:"is_completed"`
	RelatedJourneyStage string    `json:"related_journey_stage" binding:"required,oneof=ONBOARDING BRAND_BUILDING LAUNCH LIVE PAUSED CLOSED"`
}

type UpdateMilestoneRequest struct {
	Title               *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description         *string `json:"description"`
	TargetDate          *string `json:"target_date"`
	CompletedDate       *string `json:"completed_date"`
	IsCompleted         *bool   `json:"is_completed"`
	RelatedJourneyStage *string `json:"related_journey_stage" binding:"omitempty,oneof=ONBOARDING BRAND_BUILDING LAUNCH LIVE PAUSED CLOSED"`
}

type MilestoneListQuery struct {
	CreatorID           string `form:"creator_id"`
	IsCompleted         *bool  `form:"is_completed"`
	RelatedJourneyStage string `form:"related_journey_stage"`
	Ordering            string `form:"ordering"`
	Page                int    `form:"page"`
	PageSize            int    `form:"pageSize"`
}
