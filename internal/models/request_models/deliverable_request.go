package request_models

import "github.com/google/uuid"

type CreateDeliverableRequest struct {
	CreatorID       uuid.UUID `json:"creator_id" binding:"required"`
	DeliverableType string    `json:"deliverable_type" binding:"required,max=100"`
	Prompt          string    `json:"prompt"`
}

type DeliverableListQuery struct {
	CreatorID       string `form:"creator_id"`
	DeliverableType string `form:"deliverable_type"`
	Status          string `form:"status"`
	Page            int    `form:"page"`
	PageSize        int    `form:"pageSize"`
}
