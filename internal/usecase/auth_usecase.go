package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"careerquest/internal/domain/user"
	"careerquest/internal/pkg/jwt"
	"careerquest/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrInternal            = errors.New("internal error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthTokens struct {
	AccessToken  string
	RefreshToken string
}

type AuthenticatedUser struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

type AuthResult struct {
	User   AuthenticatedUser
	Tokens AuthTokens
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (AuthTokens, error)
	Profile(ctx context.Context, userID uuid.UUID) (AuthenticatedUser, error)
}

type Auth struct {
	users  user.Repository
	hasher auth.PasswordHasher
	jwt    jwt.Service
}

func NewAuthUsecase(users user.Repository, hasher auth.PasswordHasher, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, hasher: hasher, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return AuthResult{}, ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return AuthResult{}, ErrInvalidInput
	}

	exists, err := u.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	if exists {
		return AuthResult{}, ErrEmailAlreadyExists
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	now := time.Now().UTC()
	newUser := user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.CreateUser(ctx, newUser); err != nil {
		return AuthResult{}, ErrInternal
	}

	return u.resultFor(newUser)
}

func (u *Auth) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	found, err := u.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, ErrInternal
	}

	if err := u.hasher.Compare(found.PasswordHash, password); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return u.resultFor(found)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil || !u.jwt.IsRefreshToken(claims) {
		return AuthTokens{}, ErrInvalidRefreshToken
	}

	found, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return AuthTokens{}, ErrInvalidRefreshToken
		}
		return AuthTokens{}, ErrInternal
	}

	return u.tokensFor(found)
}

func (u *Auth) Profile(ctx context.Context, userID uuid.UUID) (AuthenticatedUser, error) {
	found, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return AuthenticatedUser{}, user.ErrNotFound
		}
		return AuthenticatedUser{}, ErrInternal
	}
	return authenticatedUserFrom(found), nil
}

func (u *Auth) resultFor(usr user.User) (AuthResult, error) {
	tokens, err := u.tokensFor(usr)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: authenticatedUserFrom(usr), Tokens: tokens}, nil
}

func (u *Auth) tokensFor(usr user.User) (AuthTokens, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return AuthTokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return AuthTokens{}, ErrInternal
	}
	return AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func authenticatedUserFrom(usr user.User) AuthenticatedUser {
	return AuthenticatedUser{
		ID:        usr.ID,
		Email:     usr.Email,
		FirstName: usr.FirstName,
		LastName:  usr.LastName,
		CreatedAt: usr.CreatedAt,
	}
}
