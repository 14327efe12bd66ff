package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/jwt"
	"clinicdesk/internal/pkg/password"

	"go.uber.org/zap"
)

// AuthService handles authentication business logic
type AuthService struct {
	store    *repositories.Store
	resets   *ResetTokenStore
	notifier Notifier
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	store *repositories.Store,
	resets *ResetTokenStore,
	notifier Notifier,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		store:    store,
		resets:   resets,
		notifier: notifier,
		cfg:      cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Session is the result of a successful login
type Session struct {
	User      *models.UserResponse `json:"user"`
	Principal domain.Principal     `json:"-"`
	Token     string               `json:"-"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// RegisterPatientInput represents patient self-registration input
type RegisterPatientInput struct {
	Username         string `json:"username" form:"username"`
	Email            string `json:"email" form:"email"`
	Password         string `json:"password" form:"password"`
	ConfirmPassword  string `json:"confirm_password" form:"confirm_password"`
	DateOfBirth      string `json:"dob" form:"dob"`
	Phone            string `json:"phone" form:"phone"`
	BloodGroup       string `json:"blood_group" form:"blood_group"`
	Address          string `json:"address" form:"address"`
	EmergencyContact string `json:"emergency_contact" form:"emergency_contact"`
}

// ResetPasswordInput represents the new password form
type ResetPasswordInput struct {
	Token           string `json:"-" form:"-"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.store.Users.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Persistence("load user", err)
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		return nil, err
	}

	hours := s.cfg.JWT.SessionHours
	token, err := jwt.GenerateSessionToken(user.ID, user.Username, string(role), s.cfg.JWT.Secret, hours)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	config.Log.Info("User logged in", zap.Uint("user_id", user.ID), zap.String("role", user.Role))

	return &Session{
		User:      user.ToResponse(),
		Principal: domain.Principal{UserID: user.ID, Username: user.Username, Role: role},
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(hours) * time.Hour),
	}, nil
}

// Authenticate resolves a session token into the principal it was issued to.
// Tokens of users that no longer exist, or whose id now belongs to a
// different account, are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := jwt.ValidateSessionToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrAccessDenied, err)
	}

	user, err := s.store.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return domain.Principal{}, fmt.Errorf("%w: session user no longer exists", domain.ErrAccessDenied)
		}
		return domain.Principal{}, domain.Persistence("load session user", err)
	}
	// ids restart after a reset, so the id alone may now name another account
	if user.Username != claims.Username || issuedBefore(claims, user.CreatedAt) {
		return domain.Principal{}, fmt.Errorf("%w: session was issued to a different account", domain.ErrAccessDenied)
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.Principal{UserID: user.ID, Username: user.Username, Role: role}, nil
}

// issuedBefore reports whether the token predates the account it names.
// iat has second precision and stored timestamps may round up.
func issuedBefore(claims *jwt.Claims, createdAt time.Time) bool {
	if claims.IssuedAt == nil {
		return true
	}
	return claims.IssuedAt.Time.Before(createdAt.Add(-time.Second))
}

// RegisterPatient creates a patient account and its profile
func (s *AuthService) RegisterPatient(ctx context.Context, input RegisterPatientInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return nil, domain.ErrPasswordMismatch
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrPasswordTooShort
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// an unparsable date of birth is dropped rather than rejected
	var dob *string
	if input.DateOfBirth != "" {
		if d, err := domain.ParseDate(strings.TrimSpace(input.DateOfBirth)); err == nil {
			dob = &d
		}
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     string(domain.RolePatient),
	}

	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := ensureIdentityFree(ctx, tx, username, email); err != nil {
			return err
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return identityCreateError(err)
		}

		patient := &models.Patient{
			UserID:           user.ID,
			DateOfBirth:      dob,
			BloodGroup:       strings.TrimSpace(input.BloodGroup),
			Phone:            strings.TrimSpace(input.Phone),
			Address:          strings.TrimSpace(input.Address),
			EmergencyContact: strings.TrimSpace(input.EmergencyContact),
			IsActive:         true,
		}
		if err := tx.Patients.Create(ctx, patient); err != nil {
			return domain.Persistence("create patient", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	config.Log.Info("Patient registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// RequestPasswordReset issues a reset token for the account owning email
// and sends the reset link
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.store.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrEmailNotFound
		}
		return domain.Persistence("load user", err)
	}

	token, err := s.resets.Issue(user.ID)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.cfg.BaseURL, token)
	if err := s.notifier.SendPasswordReset(ctx, user.Email, link); err != nil {
		s.resets.Consume(token)
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ValidateResetToken returns the account a live reset token belongs to
func (s *AuthService) ValidateResetToken(ctx context.Context, token string) (*models.UserResponse, error) {
	userID, ok := s.resets.Lookup(token)
	if !ok {
		return nil, domain.ErrResetTokenInvalid
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			s.resets.Consume(token)
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, domain.Persistence("load user", err)
	}
	return user.ToResponse(), nil
}

// ResetPassword sets a new password using a reset token.
// The token is spent only when the password is changed.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	user, err := s.ValidateResetToken(ctx, input.Token)
	if err != nil {
		return err
	}

	if input.NewPassword != input.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}
	if !password.ValidatePassword(input.NewPassword) {
		return domain.ErrPasswordTooShort
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.Users.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return domain.Persistence("update password", err)
	}

	s.resets.Consume(input.Token)
	config.Log.Info("Password reset", zap.Uint("user_id", user.ID))
	return nil
}

// ensureIdentityFree checks username and email uniqueness
func ensureIdentityFree(ctx context.Context, tx *repositories.Store, username, email string) error {
	exists, err := tx.Users.ExistsByUsername(ctx, username)
	if err != nil {
		return domain.Persistence("check username", err)
	}
	if exists {
		return domain.ErrUsernameTaken
	}

	exists, err = tx.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return domain.Persistence("check email", err)
	}
	if exists {
		return domain.ErrEmailTaken
	}
	return nil
}

// identityCreateError maps a failed user insert that lost a uniqueness race
func identityCreateError(err error) error {
	if repositories.IsDuplicateKey(err) {
		if strings.Contains(strings.ToLower(err.Error()), "email") {
			return domain.ErrEmailTaken
		}
		return domain.ErrUsernameTaken
	}
	return domain.Persistence("create user", err)
}
