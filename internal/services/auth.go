package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/repos"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	domainuser "github.com/yungbote/lifeline-backend/internal/domain/user"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/platform/ctxutil"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

var ErrEmailExists = fmt.Errorf("email already exists: %w", apperrors.ErrConflict)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterDonorInput struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	BloodType      string
	Address        string
	Age            *int
	Gender         string
	OrganDonor     bool
	OrgansToDonate []string
}

type RegisterAdminInput struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	Department string
	EmployeeID string
	HospitalID uuid.UUID
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type LoginResult struct {
	TokenPair
	User *types.User
}

type AuthService interface {
	RegisterDonor(ctx context.Context, in RegisterDonorInput) (*types.User, error)
	RegisterAdmin(ctx context.Context, in RegisterAdminInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	PruneExpiredTokens(ctx context.Context) (int64, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	hospitalRepo  repos.HospitalRepo
	notify        ChangeNotifier
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	hospitalRepo repos.HospitalRepo,
	notify ChangeNotifier,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		hospitalRepo:  hospitalRepo,
		notify:        notifierOrNop(notify),
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) RegisterDonor(ctx context.Context, in RegisterDonorInput) (*types.User, error) {
	email, err := normalizeCredentials(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	bloodType := strings.TrimSpace(in.BloodType)
	if bloodType != "" && !blood.ValidType(bloodType) {
		return nil, fmt.Errorf("unknown blood type %q: %w", bloodType, apperrors.ErrInvalidArgument)
	}
	organs, err := json.Marshal(nonNilStrings(in.OrgansToDonate))
	if err != nil {
		return nil, fmt.Errorf("encode organs: %w", err)
	}

	u := &types.User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Phone:          strings.TrimSpace(in.Phone),
		BloodType:      bloodType,
		Address:        strings.TrimSpace(in.Address),
		Age:            in.Age,
		Gender:         strings.TrimSpace(in.Gender),
		OrganDonor:     in.OrganDonor,
		OrgansToDonate: datatypes.JSON(organs),
		Role:           domainuser.RoleDonor,
		Status:         domainuser.StatusActive,
	}
	if err := as.createUser(ctx, u, in.Password); err != nil {
		return nil, err
	}
	return u, nil
}

func (as *authService) RegisterAdmin(ctx context.Context, in RegisterAdminInput) (*types.User, error) {
	email, err := normalizeCredentials(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Department) == "" || strings.TrimSpace(in.EmployeeID) == "" {
		return nil, fmt.Errorf("department and employee id are required: %w", apperrors.ErrInvalidArgument)
	}
	if err := requireHospital(dbctx.New(ctx), as.hospitalRepo, in.HospitalID); err != nil {
		return nil, err
	}

	hospitalID := in.HospitalID
	u := &types.User{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(in.Name),
		Email:      email,
		Phone:      strings.TrimSpace(in.Phone),
		Department: strings.TrimSpace(in.Department),
		EmployeeID: strings.TrimSpace(in.EmployeeID),
		HospitalID: &hospitalID,
		Role:       domainuser.RoleAdmin,
		Status:     domainuser.StatusActive,
	}
	if err := as.createUser(ctx, u, in.Password); err != nil {
		return nil, err
	}
	return u, nil
}

func (as *authService) createUser(ctx context.Context, u *types.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = string(hashed)

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := as.userRepo.EmailExists(dbc, u.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailExists
		}
		if _, err := as.userRepo.Create(dbc, []*types.User{u}); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return ErrEmailExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	as.log.Info("User registered", "user_id", u.ID, "role", u.Role)
	as.notify.Changed(ctx, realtime.SSEEventUserCreated, u.ID)
	return nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", apperrors.ErrInvalidArgument)
	}

	users, err := as.userRepo.GetByEmails(dbctx.New(ctx), []string{email})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	u := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	if u.Status != domainuser.StatusActive {
		return nil, fmt.Errorf("account is inactive: %w", apperrors.ErrForbidden)
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := as.issueTokens(dbctx.Context{Ctx: ctx, Tx: tx}, u)
		if err != nil {
			return err
		}
		pair = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Debug("User logged in", "user_id", u.ID)
	return &LoginResult{TokenPair: *pair, User: u}, nil
}

// Refresh exchanges a live refresh token for a new pair. The access token may
// already be expired; only the session's refresh window is checked.
func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required: %w", apperrors.ErrUnauthorized)
	}

	sessions, err := as.userTokenRepo.GetByRefreshTokens(dbctx.New(ctx), []string{refreshToken})
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("session not found: %w", apperrors.ErrUnauthorized)
	}
	existing := sessions[0]
	if !existing.ExpiresAt.After(as.now()) {
		if err := as.userTokenRepo.FullDeleteByIDs(dbctx.New(ctx), []uuid.UUID{existing.ID}); err != nil {
			as.log.Warn("Failed to delete expired session", "error", err)
		}
		return nil, fmt.Errorf("refresh token expired: %w", apperrors.ErrUnauthorized)
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		users, err := as.userRepo.GetByIDs(dbc, []uuid.UUID{existing.UserID})
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return fmt.Errorf("user not found: %w", apperrors.ErrUnauthorized)
		}
		if users[0].Status != domainuser.StatusActive {
			return fmt.Errorf("account is inactive: %w", apperrors.ErrForbidden)
		}
		p, err := as.issueTokens(dbc, users[0])
		if err != nil {
			return err
		}
		if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
			return err
		}
		pair = p
		return nil
	})
	if err != nil {
		as.log.Warn("Token refresh failed", "error", err)
		return nil, err
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.SessionID == uuid.Nil {
		return fmt.Errorf("no session in context: %w", apperrors.ErrUnauthorized)
	}
	return as.userTokenRepo.FullDeleteByIDs(dbctx.New(ctx), []uuid.UUID{rd.SessionID})
}

func (as *authService) Me(ctx context.Context) (*types.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no user in context: %w", apperrors.ErrUnauthorized)
	}
	users, err := as.userRepo.GetByIDs(dbctx.New(ctx), []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	return users[0], nil
}

// SetContextFromToken verifies the signature and expiry of an access token and
// that its session still exists, then attaches the caller to ctx.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithTimeFunc(as.now))
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject: %w", apperrors.ErrUnauthorized)
	}

	sessions, err := as.userTokenRepo.GetByAccessTokens(dbctx.New(ctx), []string{tokenString})
	if err != nil {
		return ctx, err
	}
	if len(sessions) == 0 || sessions[0].UserID != userID {
		return ctx, fmt.Errorf("session revoked: %w", apperrors.ErrUnauthorized)
	}

	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		SessionID:   sessions[0].ID,
		Role:        claims.Role,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) PruneExpiredTokens(ctx context.Context) (int64, error) {
	return as.userTokenRepo.FullDeleteExpiredBefore(dbctx.New(ctx), as.now())
}

func (as *authService) issueTokens(dbc dbctx.Context, u *types.User) (*TokenPair, error) {
	access, err := as.generateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       u.ID,
		AccessToken:  access,
		RefreshToken: uuid.New().String(),
		ExpiresAt:    as.now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{row}); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: row.RefreshToken,
		ExpiresIn:    int64(as.accessTTL.Seconds()),
	}, nil
}

func (as *authService) generateAccessToken(u *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func normalizeCredentials(name, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return "", fmt.Errorf("name, email and password are required: %w", apperrors.ErrInvalidArgument)
	}
	if !strings.Contains(email, "@") {
		return "", fmt.Errorf("invalid email: %w", apperrors.ErrInvalidArgument)
	}
	return email, nil
}

func nonNilStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
