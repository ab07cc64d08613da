package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/models/db_models"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/repositories"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	// Logout revokes token until its own expiry.
	Logout(token string, expiresAt time.Time)
	GetAccount(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	jwt         *utils.JWTManager
	revoked     mem.RevokedTokenStore
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	revoked mem.RevokedTokenStore,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		jwt:         jwt,
		revoked:     revoked,
		logger:      logger.Named("account"),
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, databaseError(a.logger, "find account", err)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.jwt.CreateToken(account.ID, account.Role)
	if err != nil {
		a.logger.Error("sign token", zap.Error(err))
		return nil, utils.ErrInvalidCredentials
	}
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		a.logger.Error("read back token", zap.Error(err))
		return nil, utils.ErrInvalidCredentials
	}

	a.logger.Debug("login", zap.String("account_id", account.ID.String()), zap.Duration("took", time.Since(startTime)))

	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresAt: utils.FormatRFC3339(claims.ExpiresAt.Time),
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, databaseError(a.logger, "find account", err)
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		a.logger.Error("hash password", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         strings.TrimSpace(request.DisplayName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleUser,
	}

	if err := a.accountRepo.InsertTx(ctx, newAccount); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, databaseError(a.logger, "insert account", err)
	}

	out := toAccountResponse(newAccount)
	return &out, nil
}

func (a *AccountService) Logout(token string, expiresAt time.Time) {
	a.revoked.Revoke(token, expiresAt)
}

func (a *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, databaseError(a.logger, "get account", err, zap.String("account_id", id.String()))
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	out := toAccountResponse(account)
	return &out, nil
}

func toAccountResponse(account *db_models.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: utils.FormatUnixRFC3339(account.CreatedAt),
	}
}
