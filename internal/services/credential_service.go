package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiocrm/internal/audit"
	"studiocrm/internal/infra"
	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/request_models"
	"studiocrm/internal/models/response_models"
	"studiocrm/internal/repositories"
	"studiocrm/pkg/logger"
	"studiocrm/pkg/utils"
)

type CredentialServiceInterface interface {
	ListCredentials(ctx context.Context, query request_models.CredentialListQuery) (response_models.PagedResponse[response_models.CredentialResponse], error)
	GetCredential(ctx context.Context, id uuid.UUID) (*response_models.CredentialResponse, error)
	CreateCredential(ctx context.Context, actor audit.Actor, req request_models.CreateCredentialRequest) (*response_models.CredentialResponse, error)
	UpdateCredential(ctx context.Context, actor audit.Actor, id uuid.UUID, req request_models.UpdateCredentialRequest) (*response_models.CredentialResponse, error)
	DeleteCredential(ctx context.Context, actor audit.Actor, id uuid.UUID) error
	RevealCredential(ctx context.Context, actor audit.Actor, id uuid.UUID) (*response_models.CredentialSecretsResponse, error)
}

type CredentialService struct {
	db          *gorm.DB
	credentials repositories.CredentialRepository
	creators    repositories.CreatorRepository
	recorder    *audit.Recorder
	clock       utils.Clock
}

func NewCredentialService(
	db *gorm.DB,
	credentials repositories.CredentialRepository,
	creators repositories.CreatorRepository,
	recorder *audit.Recorder,
	clock utils.Clock,
) CredentialServiceInterface {
	return &CredentialService{
		db:          db,
		credentials: credentials,
		creators:    creators,
		recorder:    recorder,
		clock:       clock,
	}
}

func (s *CredentialService) ListCredentials(ctx context.Context, query request_models.CredentialListQuery) (response_models.PagedResponse[response_models.CredentialResponse], error) {
	var empty response_models.PagedResponse[response_models.CredentialResponse]

	creatorID, err := parseOptionalUUID("creator_id", query.CreatorID)
	if err != nil {
		return empty, err
	}
	page, pageSize, err := utils.NormalizePage(query.Page, query.PageSize)
	if err != nil {
		return empty, err
	}

	creds, total, err := s.credentials.List(ctx, repositories.CredentialFilter{
		CreatorID:            creatorID,
		PlatformName:         strings.TrimSpace(query.PlatformName),
		PlatformNameContains: strings.TrimSpace(query.PlatformNameContains),
		IsActive:             query.IsActive,
		Page:                 page,
		PageSize:             pageSize,
	})
	if err != nil {
		return empty, translateErr(err)
	}

	items := make([]response_models.CredentialResponse, 0, len(creds))
	for i := range creds {
		items = append(items, response_models.NewCredentialResponse(&creds[i]))
	}
	return response_models.NewPagedResponse(items, page, pageSize, total), nil
}

func (s *CredentialService) GetCredential(ctx context.Context, id uuid.UUID) (*response_models.CredentialResponse, error) {
	cred, err := s.credentials.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	if cred == nil {
		return nil, utils.ErrCredentialNotFound
	}

	resp := response_models.NewCredentialResponse(cred)
	return &resp, nil
}

func (s *CredentialService) CreateCredential(ctx context.Context, actor audit.Actor, req request_models.CreateCredentialRequest) (*response_models.CredentialResponse, error) {
	lastVerified, err := utils.ParseDate(req.LastVerifiedDate)
	if err != nil {
		return nil, err
	}
	expiresOn, err := utils.ParseDate(req.ExpiresOn)
	if err != nil {
		return nil, err
	}

	cred := &db_models.Credential{
		CreatorID:            req.CreatorID,
		CreatedByID:          actor.UserID,
		PlatformName:         strings.TrimSpace(req.PlatformName),
		AccountIdentifier:    strings.TrimSpace(req.AccountIdentifier),
		LoginURL:             req.LoginURL,
		Password:             req.Password,
		TwoFactorBackupCodes: req.TwoFactorBackupCodes,
		APIKeys:              req.APIKeys,
		Notes:                req.Notes,
		LastVerifiedDate:     lastVerified,
		ExpiresOn:            expiresOn,
		IsActive:             true,
	}
	if req.IsActive != nil {
		cred.IsActive = *req.IsActive
	}

	now := s.clock.Now()
	err = infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		creator, err := s.creators.WithTx(tx).FindByID(ctx, cred.CreatorID)
		if err != nil {
			return err
		}
		if creator == nil {
			return validationErr("creator %s does not exist", cred.CreatorID)
		}
		cred.Creator = creator

		repo := s.credentials.WithTx(tx)
		if err := s.ensureUniqueIdentity(ctx, repo, cred); err != nil {
			return err
		}
		if err := repo.Create(ctx, cred); err != nil {
			return duplicateCredential(err)
		}

		return s.recorder.Record(ctx, tx, audit.CredentialEvent(actor, now, db_models.ActionCreate, cred))
	})
	if err != nil {
		return nil, translateErr(err)
	}

	logger.FromContext(ctx).Info("Credential created",
		zap.String("credential_id", cred.ID.String()),
		zap.String("creator_id", cred.CreatorID.String()),
		zap.String("platform", cred.PlatformName),
	)

	resp := response_models.NewCredentialResponse(cred)
	return &resp, nil
}

// UpdateCredential always records an UPDATE entry, even when nothing changed.
func (s *CredentialService) UpdateCredential(ctx context.Context, actor audit.Actor, id uuid.UUID, req request_models.UpdateCredentialRequest) (*response_models.CredentialResponse, error) {
	now := s.clock.Now()

	var cred *db_models.Credential
	err := infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		repo := s.credentials.WithTx(tx)

		var err error
		cred, err = repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cred == nil {
			return utils.ErrCredentialNotFound
		}

		identityChanged, err := applyCredentialUpdate(cred, req)
		if err != nil {
			return err
		}
		if identityChanged {
			if err := s.ensureUniqueIdentity(ctx, repo, cred); err != nil {
				return err
			}
		}

		if err := repo.Save(ctx, cred); err != nil {
			return duplicateCredential(err)
		}

		return s.recorder.Record(ctx, tx, audit.CredentialEvent(actor, now, db_models.ActionUpdate, cred))
	})
	if err != nil {
		return nil, translateErr(err)
	}

	resp := response_models.NewCredentialResponse(cred)
	return &resp, nil
}

func (s *CredentialService) DeleteCredential(ctx context.Context, actor audit.Actor, id uuid.UUID) error {
	now := s.clock.Now()

	err := infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		repo := s.credentials.WithTx(tx)

		cred, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cred == nil {
			return utils.ErrCredentialNotFound
		}

		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx, audit.CredentialEvent(actor, now, db_models.ActionDelete, cred))
	})
	if err != nil {
		return translateErr(err)
	}

	logger.FromContext(ctx).Info("Credential deleted", zap.String("credential_id", id.String()))
	return nil
}

// RevealCredential returns the decrypted secrets and records who looked.
func (s *CredentialService) RevealCredential(ctx context.Context, actor audit.Actor, id uuid.UUID) (*response_models.CredentialSecretsResponse, error) {
	now := s.clock.Now()

	var cred *db_models.Credential
	err := infra.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		cred, err = s.credentials.WithTx(tx).FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cred == nil {
			return utils.ErrCredentialNotFound
		}
		return s.recorder.Record(ctx, tx, audit.CredentialEvent(actor, now, db_models.ActionViewCredential, cred))
	})
	if err != nil {
		return nil, translateErr(err)
	}

	logger.FromContext(ctx).Warn("Credential secrets revealed",
		zap.String("credential_id", id.String()),
		zap.String("user_email", actor.Email),
	)

	resp := response_models.NewCredentialSecretsResponse(cred)
	return &resp, nil
}

func (s *CredentialService) ensureUniqueIdentity(ctx context.Context, repo repositories.CredentialRepository, cred *db_models.Credential) error {
	existing, err := repo.FindByIdentity(ctx, cred.CreatorID, cred.PlatformName, cred.AccountIdentifier)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != cred.ID {
		return fmt.Errorf("%w: %s on %s", utils.ErrDuplicateCredential, cred.AccountIdentifier, cred.PlatformName)
	}
	return nil
}

func duplicateCredential(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicateCredential
	}
	return err
}

// applyCredentialUpdate reports whether the (platform, account) identity changed.
func applyCredentialUpdate(c *db_models.Credential, req request_models.UpdateCredentialRequest) (bool, error) {
	platform, account := c.PlatformName, c.AccountIdentifier

	if req.PlatformName != nil {
		c.PlatformName = strings.TrimSpace(*req.PlatformName)
	}
	if req.AccountIdentifier != nil {
		c.AccountIdentifier = strings.TrimSpace(*req.AccountIdentifier)
	}
	if c.PlatformName == "" || c.AccountIdentifier == "" {
		return false, validationErr("platform_name and account_identifier cannot be blank")
	}

	setString(&c.LoginURL, req.LoginURL)
	setString(&c.Password, req.Password)
	setString(&c.TwoFactorBackupCodes, req.TwoFactorBackupCodes)
	setString(&c.APIKeys, req.APIKeys)
	setString(&c.Notes, req.Notes)
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := setDate(&c.LastVerifiedDate, req.LastVerifiedDate); err != nil {
		return false, err
	}
	if err := setDate(&c.ExpiresOn, req.ExpiresOn); err != nil {
		return false, err
	}

	return platform != c.PlatformName || account != c.AccountIdentifier, nil
}
