package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yuditriaji/chefstock/pkg/apiclient"
	"github.com/yuditriaji/chefstock/pkg/credential"
	"github.com/yuditriaji/chefstock/pkg/validate"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Claims is what the client can read from its own access token.
type Claims struct {
	UserID    string
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed. A token without an
// exp claim never expires.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Service is the login/logout flow, the only writer of the credential store.
type Service struct {
	api   *apiclient.Client
	store *credential.Store
	log   *zap.Logger
}

func NewService(api *apiclient.Client, store *credential.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, store: store, log: log.Named("auth")}
}

// Login exchanges username and password for tokens and persists both. The
// request itself is sent without a bearer header.
func (s *Service) Login(ctx context.Context, username, password string) error {
	var errs validate.Errors
	if !validate.NotEmpty(username) {
		errs.Add("username", "is required")
	}
	if !validate.NotEmpty(password) {
		errs.Add("password", "is required")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	var resp LoginResponse
	err := s.api.Do(ctx, apiclient.Request{
		Method:    http.MethodPost,
		Path:      "login/",
		Body:      LoginRequest{Username: username, Password: password},
		Anonymous: true,
	}, &resp)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.Access == "" {
		return errors.New("login: response carried no access token")
	}

	tok := &oauth2.Token{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		TokenType:    "Bearer",
	}
	if claims, err := ParseClaims(resp.Access); err == nil {
		tok.Expiry = claims.ExpiresAt
	}
	if err := s.store.Set(ctx, tok); err != nil {
		return err
	}
	s.log.Info("logged in", zap.String("username", username))
	return nil
}

// Logout forgets both tokens locally; nothing is sent to the backend.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info("logged out")
	return nil
}

// WhoAmI decodes the stored access token.
func (s *Service) WhoAmI(ctx context.Context) (Claims, error) {
	tok, err := s.store.Token(ctx)
	if err != nil {
		return Claims{}, err
	}
	return ParseClaims(tok.AccessToken)
}

// ParseClaims reads a JWT without verifying its signature; the client holds
// no key and only uses the claims for display.
func ParseClaims(token string) (Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}

	var c Claims
	switch v := claims["user_id"].(type) {
	case string:
		c.UserID = v
	case float64:
		c.UserID = fmt.Sprintf("%.0f", v)
	}
	c.Username, _ = claims["username"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
