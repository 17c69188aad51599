package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/request_models"
	"studiocrm/internal/models/response_models"
	"studiocrm/internal/repositories"
	"studiocrm/pkg/logger"
	"studiocrm/pkg/memcache"
	"studiocrm/pkg/metrics"
	"studiocrm/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	CreateUser(ctx context.Context, request request_models.CreateUserRequest) (*response_models.UserResponse, error)
	ListUsers(ctx context.Context) ([]response_models.UserResponse, error)
}

type AuthService struct {
	userRepo repositories.UserRepository
	issuer   *utils.TokenIssuer
	revoked  memcache.RevokedTokenStore
	clock    utils.Clock
}

func NewAuthService(userRepo repositories.UserRepository, issuer *utils.TokenIssuer, revoked memcache.RevokedTokenStore, clock utils.Clock) AuthServiceInterface {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		revoked:  revoked,
		clock:    clock,
	}
}

func (a *AuthService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		metrics.RecordLogin("error")
		return nil, translateErr(err)
	}

	// Unknown email and wrong password look the same to the caller.
	if user == nil || !user.IsActive {
		metrics.RecordLogin("rejected")
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		metrics.RecordLogin("rejected")
		log.Info("Login rejected", zap.String("email", user.Email))
		return nil, utils.ErrInvalidCredentials
	}

	token, expiresAt, err := a.issuer.CreateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		metrics.RecordLogin("error")
		return nil, err
	}

	metrics.RecordLogin("success")
	log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response_models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		User:      response_models.NewUserResponse(user),
	}, nil
}

// Logout revokes the token for whatever lifetime it has left.
func (a *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return utils.ErrUnauthorized
	}

	ttl := expiresAt.Sub(a.clock.Now())
	if ttl <= 0 {
		return nil
	}
	a.revoked.Revoke(tokenID, ttl)

	logger.FromContext(ctx).Debug("Token revoked", zap.String("token_id", tokenID))
	return nil
}

func (a *AuthService) CreateUser(ctx context.Context, request request_models.CreateUserRequest) (*response_models.UserResponse, error) {
	role := db_models.UserRole(request.Role)
	if !role.Valid() {
		return nil, validationErr("unknown role %q", request.Role)
	}

	email := normalizeEmail(request.Email)
	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, translateErr(err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	user := &db_models.User{
		Name:         request.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}
	if err := a.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, translateErr(err)
	}

	logger.FromContext(ctx).Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response_models.NewUserResponse(user)
	return &resp, nil
}

func (a *AuthService) ListUsers(ctx context.Context) ([]response_models.UserResponse, error) {
	users, err := a.userRepo.List(ctx)
	if err != nil {
		return nil, translateErr(err)
	}

	out := make([]response_models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, response_models.NewUserResponse(&users[i]))
	}
	return out, nil
}
