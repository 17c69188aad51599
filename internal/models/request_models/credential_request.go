package request_models

import "github.com/google/uuid"

type CreateCredentialRequest struct {
	CreatorID         uuid.UUID `json:"creator_id" binding:"required"`
	PlatformName      string    `json:"platform_name" binding:"required,max=100"`
	AccountIdentifier string    `json:"account_identifier" binding:"required,max=200"`

	LoginURL             string `json:"login_url" binding:"omitempty,max=500"`
	Password             string `json:"password" binding:"max=200"`
	TwoFactorBackupCodes string `json:"two_factor_backup_codes"`
	APIKeys              string `json:"api_keys"`

	Notes            string `json:"notes"`
	LastVerifiedDate string `json:"last_verified_date"`
	ExpiresOn        string `json:"expires_on"`
	IsActive         *bool  `json:"is_active"`
}

type UpdateCredentialRequest struct {
	PlatformName      *string `json:"platform_name" binding:"omitempty,min=1,max=100"`
	AccountIdentifier *string `json:"account_identifier" binding:"omitempty,min=1,max=200"`

	LoginURL             *string `json:"login_url" binding:"omitempty,max=500"`
	Password             *string `json:"password" binding:"omitempty,max=200"`
	TwoFactorBackupCodes *string `json:"two_factor_backup_codes"`
	APIKeys              *string `json:"api_keys"`

	Notes            *string `json:"notes"`
	LastVerifiedDate *string `json:"last_verified_date"`
	ExpiresOn        *string `json:"expires_on"`
	IsActive         *bool   `json:"is_active"`
}

type CredentialListQuery struct {
	CreatorID            string `form:"creator_id"`
	PlatformName         string `form:"platform_name"`
	PlatformNameContains string `form:"platform_name__icontains"`
	IsActive             *bool  `form:"is_active"`
	Page                 int    `form:"page"`
	PageSize             int    `form:"pageSize"`
}
