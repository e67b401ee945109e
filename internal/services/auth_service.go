package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	passwordvalidator "github.com/wagslane/go-password-validator"
	"gorm.io/gorm"

	"github.com/blossom-focus/blossom-api/internal/constants"
	"github.com/blossom-focus/blossom-api/internal/mailer"
	"github.com/blossom-focus/blossom-api/internal/models"
	"github.com/blossom-focus/blossom-api/internal/repository"
	"github.com/blossom-focus/blossom-api/internal/token"
	"github.com/blossom-focus/blossom-api/internal/utils"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already exists")
	ErrUsernameRequired     = errors.New("username is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrWeakPassword         = errors.New("password is too weak")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAccountUnverified    = errors.New("account email is not verified")
	ErrOAuthOnlyAccount     = errors.New("this account uses Google login")
	ErrVerificationFailed   = errors.New("verification code is invalid or expired")
	ErrPasswordMismatch     = errors.New("new password and confirmation do not match")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidTheme         = errors.New("theme must be light or dark")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, login, verification, and the password
// reset flows.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
	mail     mailer.Mailer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *token.Service, mail mailer.Mailer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		mail:     mail,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates an unverified local account and emails a verification
// code. Mail delivery is best-effort: a send failure is logged and the
// account still exists.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	if err := passwordvalidator.Validate(input.Password, constants.MinPasswordEntropy); err != nil {
		return nil, ErrWeakPassword
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	expiresAt := time.Now().Add(constants.VerifyEmailOTPExpiry)
	xp := constants.DefaultXP

	user := &models.User{
		Username:              username,
		Email:                 email,
		PasswordHash:          hash,
		Provider:              models.ProviderLocal,
		Verified:              false,
		VerificationToken:     &code,
		VerificationExpiresAt: &expiresAt,
		XP:                    &xp,
		Theme:                 constants.ThemeDark,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	subject, body := mailer.VerificationBody(user.Username, code)
	if err := s.mail.Send(user.Email, subject, body); err != nil {
		log.Printf("failed to send verification email to %s: %v", user.Email, err)
	}

	return user, nil
}

// VerifyEmail marks the account verified when the code matches and has not
// expired. Mismatch and expiry are reported identically.
func (s *AuthService) VerifyEmail(email, code string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVerificationFailed
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.VerificationToken == nil || user.VerificationExpiresAt == nil {
		return ErrVerificationFailed
	}
	if *user.VerificationToken != code || !time.Now().Before(*user.VerificationExpiresAt) {
		return ErrVerificationFailed
	}

	user.Verified = true
	user.VerificationToken = nil
	user.VerificationExpiresAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	return nil
}

// LoginResult carries the issued bearer token alongside the user.
type LoginResult struct {
	User  *models.User
	Token string
}

// Login authenticates by username or email. Google accounts are redirected
// to OAuth, and unverified local accounts fail with a signal distinct from
// bad credentials.
func (s *AuthService) Login(identity, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByIdentity(strings.TrimSpace(identity))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Provider == models.ProviderGoogle {
		return nil, ErrOAuthOnlyAccount
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, ErrAccountUnverified
	}

	bearer, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{User: user, Token: bearer}, nil
}

// ResetPassword changes the password of an authenticated user after the old
// one verifies.
func (s *AuthService) ResetPassword(userID uint64, oldPassword, newPassword, confirm string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPassword(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return ErrFailedToHashPassword
	}
	user.PasswordHash = hash

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// RequestPasswordReset issues a fresh OTP with the shorter forgot-password
// window and emails it. A reissue overwrites any live code.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}
	expiresAt := time.Now().Add(constants.ForgotPasswordExpiry)

	user.VerificationToken = &code
	user.VerificationExpiresAt = &expiresAt
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	subject, body := mailer.PasswordResetBody(user.Username, code)
	if err := s.mail.Send(user.Email, subject, body); err != nil {
		log.Printf("failed to send password reset email to %s: %v", user.Email, err)
	}

	return nil
}

// CompletePasswordReset sets a new password given a valid unexpired OTP. The
// identity may be a username or an email.
func (s *AuthService) CompletePasswordReset(identity, code, newPassword, confirm string) error {
	user, err := s.userRepo.FindByIdentity(strings.TrimSpace(identity))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVerificationFailed
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.VerificationToken == nil || user.VerificationExpiresAt == nil {
		return ErrVerificationFailed
	}
	if *user.VerificationToken != code || !time.Now().Before(*user.VerificationExpiresAt) {
		return ErrVerificationFailed
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = hash
	user.VerificationToken = nil
	user.VerificationExpiresAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// DeleteAccount removes the user and all owned data after the password
// verifies.
func (s *AuthService) DeleteAccount(userID uint64, password string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *AuthService) GetUserByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetUserXP returns the user's XP, persisting the default for rows that have
// never had one.
func (s *AuthService) GetUserXP(userID uint64) (int, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to find user: %w", err)
	}

	if user.XP == nil {
		xp := constants.DefaultXP
		user.XP = &xp
		if err := s.userRepo.Update(user); err != nil {
			return 0, fmt.Errorf("failed to initialize XP: %w", err)
		}
	}

	return *user.XP, nil
}

// UpdateTheme stores the user's theme preference.
func (s *AuthService) UpdateTheme(userID uint64, theme string) error {
	if theme != constants.ThemeLight && theme != constants.ThemeDark {
		return ErrInvalidTheme
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.Theme = theme
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	return nil
}
