package response_models

import (
	"time"

	"studiocrm/internal/models/db_models"
	"studiocrm/pkg/utils"
)

// CredentialResponse never carries secret values, only whether they are set.
type CredentialResponse struct {
	ID                      string    `json:"id"`
	CreatorID               string    `json:"creator_id"`
	BrandName               string    `json:"brand_name,omitempty"`
	PlatformName            string    `json:"platform_name"`
	AccountIdentifier       string    `json:"account_identifier"`
	HasLoginURL             bool      `json:"has_login_url"`
	HasPassword             bool      `json:"has_password"`
	HasTwoFactorBackupCodes bool      `json:"has_two_factor_backup_codes"`
	HasAPIKeys              bool      `json:"has_api_keys"`
	Notes                   string    `json:"notes"`
	LastVerifiedDate        string    `json:"last_verified_date,omitempty"`
	ExpiresOn               string    `json:"expires_on,omitempty"`
	IsActive                bool      `json:"is_active"`
	CreatedByID             *string   `json:"created_by_id"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func NewCredentialResponse(c *db_models.Credential) CredentialResponse {
	r := CredentialResponse{
		ID:                      c.ID.String(),
		CreatorID:               c.CreatorID.String(),
		PlatformName:            c.PlatformName,
		AccountIdentifier:       c.AccountIdentifier,
		HasLoginURL:             c.LoginURL != "",
		HasPassword:             c.Password != "",
		HasTwoFactorBackupCodes: c.TwoFactorBackupCodes != "",
		HasAPIKeys:              c.APIKeys != "",
		Notes:                   c.Notes,
		LastVerifiedDate:        utils.FormatDate(c.LastVerifiedDate),
		ExpiresOn:               utils.FormatDate(c.ExpiresOn),
		IsActive:                c.IsActive,
		CreatedByID:             uuidString(c.CreatedByID),
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
	if c.Creator != nil {
		r.BrandName = c.Creator.BrandName
	}
	return r
}

// CredentialSecretsResponse is only returned by the reveal endpoint.
type CredentialSecretsResponse struct {
	CredentialResponse
	LoginURL             string `json:"login_url"`
	Password             string `json:"password"`
	TwoFactorBackupCodes string `json:"two_factor_backup_codes"`
	APIKeys              string `json:"api_keys"`
}

func NewCredentialSecretsResponse(c *db_models.Credential) CredentialSecretsResponse {
	return CredentialSecretsResponse{
		CredentialResponse:   NewCredentialResponse(c),
		LoginURL:             c.LoginURL,
		Password:             c.Password,
		TwoFactorBackupCodes: c.TwoFactorBackupCodes,
		APIKeys:              c.APIKeys,
	}
}
