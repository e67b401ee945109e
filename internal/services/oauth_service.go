package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/blossom-focus/blossom-api/internal/constants"
	"github.com/blossom-focus/blossom-api/internal/models"
	"github.com/blossom-focus/blossom-api/internal/repository"
	"github.com/blossom-focus/blossom-api/internal/token"
)

var ErrOAuthExchangeFailed = errors.New("google login failed")

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthService handles the Google login flow: code exchange, userinfo fetch,
// and find-or-create of the local account.
type OAuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
	oauth    *oauth2.Config
}

// NewOAuthService creates a new OAuthService.
func NewOAuthService(userRepo repository.UserRepository, tokens *token.Service, clientID, clientSecret, redirectURL string) *OAuthService {
	return &OAuthService{
		userRepo: userRepo,
		tokens:   tokens,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Configured reports whether Google credentials are present.
func (s *OAuthService) Configured() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != ""
}

// AuthURL returns the Google consent URL for the given state nonce.
func (s *OAuthService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// HandleCallback exchanges the authorization code, resolves the Google
// identity to a local account (creating an auto-verified one on first
// login), and issues a bearer token.
func (s *OAuthService) HandleCallback(ctx context.Context, code string) (*LoginResult, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, ErrOAuthExchangeFailed
	}

	info, err := s.fetchUserInfo(ctx, tok)
	if err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, ErrOAuthExchangeFailed
	}

	user, err := s.userRepo.FindByEmail(info.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		user, err = s.createGoogleUser(info)
		if err != nil {
			return nil, err
		}
	}

	bearer, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{User: user, Token: bearer}, nil
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, tok *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauth.Client(ctx, tok)
	client.Timeout = 10 * time.Second

	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, ErrOAuthExchangeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrOAuthExchangeFailed
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, ErrOAuthExchangeFailed
	}
	return &info, nil
}

// createGoogleUser registers a pre-verified account for a first-time Google
// login, deriving a unique username from the email local part.
func (s *OAuthService) createGoogleUser(info *googleUserInfo) (*models.User, error) {
	username, err := s.uniqueUsername(strings.SplitN(info.Email, "@", 2)[0])
	if err != nil {
		return nil, err
	}

	xp := constants.DefaultXP
	user := &models.User{
		Username:   username,
		Email:      info.Email,
		Provider:   models.ProviderGoogle,
		ProviderID: info.ID,
		Verified:   true,
		XP:         &xp,
		Theme:      constants.ThemeDark,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *OAuthService) uniqueUsername(base string) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		_, err := s.userRepo.FindByUsername(candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
}
