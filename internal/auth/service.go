package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/office-management/internal"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the slice of the user store that authentication needs.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
}

type Service struct {
	users          UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	events         events.Publisher
	logger         *slog.Logger
}

func NewService(users UserRepository, tokenGen TokenGenerator, bcryptCost int, publisher events.Publisher, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = internal.DefaultBCryptCost
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		users:          users,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		events:         publisher,
		logger:         logger,
	}
}

func (s *Service) SignUp(ctx context.Context, dto SignUpDTO) (*AuthResult, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, dto.Email)
	switch {
	case err == nil:
		return nil, internal.ErrEmailRegistered
	case !errors.Is(err, user.ErrNotFound):
		s.logger.Error("failed to look up email", "error", err)
		return nil, internal.NewInternalError("failed to look up email", err)
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, internal.NewValidationFieldError("password", err.Error(), internal.ErrCodeValidationFailed)
		}
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		FullName:         dto.FullName,
		OrganizationName: dto.OrganizationName,
		Email:            dto.Email,
		PhoneNo:          dto.PhoneNo,
		PasswordHash:     hash,
	}
	if err := s.users.Create(ctx, row); err != nil {
		// a concurrent sign-up can win the race after the lookup above
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, internal.ErrEmailRegistered
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	result, err := s.issue(user.FromDataModel(row))
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.NewEvent(events.UserRegistered, map[string]interface{}{
		"user_id":      row.ID,
		"organization": row.OrganizationName,
	}))
	s.logger.Info("user registered", "user_id", row.ID)
	return result, nil
}

// SignIn answers unknown emails and wrong passwords with the same error.
func (s *Service) SignIn(ctx context.Context, dto SignInDTO) (*AuthResult, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.users.GetByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user", "error", err)
		return nil, internal.NewInternalError("failed to look up user", err)
	}

	if err := VerifyPassword(row.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	return s.issue(user.FromDataModel(row))
}

func (s *Service) RefreshTokens(ctx context.Context, dto RefreshTokenDTO) (*AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.tokenGenerator.ValidateRefreshToken(dto.RefreshToken)
	if err != nil {
		return nil, err
	}

	row, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}

	tokens, err := s.tokens(row.ID, row.Email)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Authenticate resolves an access token to the id of an existing user.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (int64, error) {
	if accessToken == "" {
		return 0, internal.ErrMissingToken
	}

	claims, err := s.tokenGenerator.ValidateAccessToken(accessToken)
	if err != nil {
		return 0, err
	}

	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return 0, internal.ErrInvalidToken
		}
		return 0, internal.NewInternalError("failed to load user", err)
	}
	return claims.UserID, nil
}

func (s *Service) issue(u *user.User) (*AuthResult, error) {
	tokens, err := s.tokens(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: tokens}, nil
}

func (s *Service) tokens(userID int64, email string) (AuthTokens, error) {
	access, err := s.tokenGenerator.GenerateAccessToken(userID, email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue token", err)
	}
	refresh, err := s.tokenGenerator.GenerateRefreshToken(userID, email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue token", err)
	}
	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokenGenerator.AccessTTL().Seconds()),
	}, nil
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
