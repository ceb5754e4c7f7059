package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"itdocsapi/config"
	"itdocsapi/models"
	"itdocsapi/pkg/apperr"
	"itdocsapi/pkg/logger"
	"itdocsapi/repository"
	"itdocsapi/services/dto"
	"itdocsapi/utils"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "itdocsapi"

// AuthService manages API accounts and the bearer tokens issued to them.
type AuthService interface {
	// Login checks the credentials of an active account and issues a token.
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	// VerifyToken returns the username a valid, unexpired token was issued to.
	VerifyToken(token string) (string, error)

	CreateAccount(ctx context.Context, req dto.AccountCreateRequest) (*dto.AccountView, error)
	GetAccount(ctx context.Context, id uint) (*dto.AccountView, error)
	UpdateAccount(ctx context.Context, id uint, req dto.AccountUpdateRequest) (*dto.AccountView, error)
	DeleteAccount(ctx context.Context, id uint) error
	ListAccounts(ctx context.Context) ([]dto.AccountView, error)

	CreateGroup(ctx context.Context, req dto.AccountGroupCreateRequest) (*models.AccountGroup, error)
	GetGroup(ctx context.Context, id uint) (*models.AccountGroup, error)
	UpdateGroup(ctx context.Context, id uint, req dto.AccountGroupCreateRequest) (*models.AccountGroup, error)
	DeleteGroup(ctx context.Context, id uint) error
	ListGroups(ctx context.Context) ([]models.AccountGroup, error)

	// EnsureAdmin creates the named account when it does not exist yet.
	EnsureAdmin(ctx context.Context, username, password, email string) error
}

type authService struct {
	baseRepo    repository.BaseRepository
	accountRepo repository.AccountRepository
	secret      []byte
	ttl         time.Duration
}

// NewAuthService creates an auth service signing with the configured secret.
func NewAuthService() AuthService {
	return &authService{
		baseRepo:    repository.NewBaseRepository(),
		accountRepo: repository.NewAccountRepository(),
		secret:      []byte(config.Cfg.JWTSecret),
		ttl:         config.Cfg.TokenTTL,
	}
}

// NewAuthServiceWithDeps creates a service instance with injected dependencies.
func NewAuthServiceWithDeps(
	baseRepo repository.BaseRepository,
	accountRepo repository.AccountRepository,
	secret []byte,
	ttl time.Duration,
) AuthService {
	return &authService{
		baseRepo:    baseRepo,
		accountRepo: accountRepo,
		secret:      secret,
		ttl:         ttl,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	account, err := s.accountRepo.GetByUsername(s.baseRepo.Conn(ctx), username)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, &apperr.AuthorizationError{Reason: "invalid username or password"}
	}
	if err != nil {
		return nil, err
	}
	if !account.IsActive || !utils.CheckPassword(account.PasswordHash, password) {
		logger.Warnf("Rejected login for account %s", username)
		return nil, &apperr.AuthorizationError{Reason: "invalid username or password"}
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   account.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	logger.Infof("Account %s logged in", username)
	return &dto.TokenResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(s.ttl.Seconds()),
	}, nil
}

func (s *authService) VerifyToken(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", &apperr.AuthorizationError{Reason: "invalid or expired token"}
	}

	account, err := s.accountRepo.GetByUsername(s.baseRepo.Conn(context.Background()), claims.Subject)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", &apperr.AuthorizationError{Reason: "unknown account"}
	}
	if err != nil {
		return "", err
	}
	if !account.IsActive {
		return "", &apperr.AuthorizationError{Reason: "account is disabled"}
	}
	return account.Username, nil
}

func (s *authService) CreateAccount(ctx context.Context, req dto.AccountCreateRequest) (*dto.AccountView, error) {
	tx := s.baseRepo.Begin(ctx)

	count, err := s.accountRepo.CountByUsername(tx, req.Username, 0)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to check account %s: %w", req.Username, err)
	}
	if count > 0 {
		tx.Rollback()
		return nil, &apperr.UniquenessViolation{Entity: "account", Field: "username", Value: req.Username}
	}

	groups, err := s.accountRepo.GetGroupsByIDs(tx, req.Groups)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to load account groups: %w", err)
	}
	if missing := missingGroup(req.Groups, groups); missing != 0 {
		tx.Rollback()
		return nil, &apperr.ReferentialIntegrityError{Entity: "account", Field: "groups", RefEntity: "account_group", RefID: missing}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	account := models.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
		Groups:       groups,
	}
	if err := s.accountRepo.Create(tx, &account); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit account %s: %w", req.Username, err)
	}
	logger.Infof("Created account %s with %d groups", account.Username, len(groups))
	view := dto.NewAccountView(account)
	return &view, nil
}

func (s *authService) GetAccount(ctx context.Context, id uint) (*dto.AccountView, error) {
	account, err := s.accountRepo.GetByID(s.baseRepo.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	view := dto.NewAccountView(*account)
	return &view, nil
}

func (s *authService) UpdateAccount(ctx context.Context, id uint, req dto.AccountUpdateRequest) (*dto.AccountView, error) {
	tx := s.baseRepo.Begin(ctx)

	account, err := s.accountRepo.GetByID(tx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	count, err := s.accountRepo.CountByUsername(tx, req.Username, id)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to check account %s: %w", req.Username, err)
	}
	if count > 0 {
		tx.Rollback()
		return nil, &apperr.UniquenessViolation{Entity: "account", Field: "username", Value: req.Username}
	}
	groups, err := s.accountRepo.GetGroupsByIDs(tx, req.Groups)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to load account groups: %w", err)
	}
	if missing := missingGroup(req.Groups, groups); missing != 0 {
		tx.Rollback()
		return nil, &apperr.ReferentialIntegrityError{Entity: "account", Field: "groups", RefEntity: "account_group", RefID: missing}
	}

	account.Username = req.Username
	account.Email = req.Email
	account.Groups = groups
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		account.PasswordHash = hash
	}
	if err := s.accountRepo.Update(tx, account); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit account id=%d: %w", id, err)
	}
	logger.Infof("Updated account %s (password changed: %t)", account.Username, req.Password != "")
	view := dto.NewAccountView(*account)
	return &view, nil
}

func (s *authService) DeleteAccount(ctx context.Context, id uint) error {
	tx := s.baseRepo.Begin(ctx)
	if err := s.accountRepo.Delete(tx, id); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit account id=%d deletion: %w", id, err)
	}
	logger.Infof("Deleted account id=%d", id)
	return nil
}

func (s *authService) ListAccounts(ctx context.Context) ([]dto.AccountView, error) {
	accounts, err := s.accountRepo.GetAll(s.baseRepo.Conn(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	views := make([]dto.AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, dto.NewAccountView(a))
	}
	return views, nil
}

func (s *authService) CreateGroup(ctx context.Context, req dto.AccountGroupCreateRequest) (*models.AccountGroup, error) {
	tx := s.baseRepo.Begin(ctx)
	count, err := s.accountRepo.CountGroupsByName(tx, req.Name, 0)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to check account group %s: %w", req.Name, err)
	}
	if count > 0 {
		tx.Rollback()
		return nil, &apperr.UniquenessViolation{Entity: "account_group", Field: "name", Value: req.Name}
	}
	group := models.AccountGroup{Name: req.Name}
	if err := s.accountRepo.CreateGroup(tx, &group); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit account group %s: %w", req.Name, err)
	}
	return &group, nil
}

func (s *authService) GetGroup(ctx context.Context, id uint) (*models.AccountGroup, error) {
	return s.accountRepo.GetGroupByID(s.baseRepo.Conn(ctx), id)
}

func (s *authService) UpdateGroup(ctx context.Context, id uint, req dto.AccountGroupCreateRequest) (*models.AccountGroup, error) {
	tx := s.baseRepo.Begin(ctx)
	group, err := s.accountRepo.GetGroupByID(tx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	count, err := s.accountRepo.CountGroupsByName(tx, req.Name, id)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to check account group %s: %w", req.Name, err)
	}
	if count > 0 {
		tx.Rollback()
		return nil, &apperr.UniquenessViolation{Entity: "account_group", Field: "name", Value: req.Name}
	}
	group.Name = req.Name
	if err := s.accountRepo.UpdateGroup(tx, group); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit account group id=%d: %w", id, err)
	}
	return group, nil
}

func (s *authService) DeleteGroup(ctx context.Context, id uint) error {
	tx := s.baseRepo.Begin(ctx)
	if err := s.accountRepo.DeleteGroup(tx, id); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit account group id=%d deletion: %w", id, err)
	}
	logger.Infof("Deleted account group id=%d", id)
	return nil
}

func (s *authService) ListGroups(ctx context.Context) ([]models.AccountGroup, error) {
	groups, err := s.accountRepo.GetAllGroups(s.baseRepo.Conn(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list account groups: %w", err)
	}
	return groups, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	count, err := s.accountRepo.CountByUsername(s.baseRepo.Conn(ctx), username, 0)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if count > 0 {
		logger.Debugf("Admin account %s already exists", username)
		return nil
	}
	_, err = s.CreateAccount(ctx, dto.AccountCreateRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	return err
}

func missingGroup(ids []uint, groups []models.AccountGroup) uint {
	found := make(map[uint]bool, len(groups))
	for _, g := range groups {
		found[g.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return id
		}
	}
	return 0
}
