package request_models

type AuditLogListQuery struct {
	ActionType  string `form:"action_type"`
	TargetModel string `form:"target_model"`
	UserID      string `form:"user_id"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}
