// Package credential owns the persisted bearer tokens. Only the login and
// logout flows hold a *Store; everything else reads through Source.
package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuditriaji/chefstock/pkg/storage"
	"golang.org/x/oauth2"
)

const (
	AccessKey  = "access"
	RefreshKey = "refresh"
)

// ErrNoCredential means nobody is logged in.
var ErrNoCredential = errors.New("credential: not logged in")

type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Set persists both tokens. Called once per successful login.
func (s *Store) Set(ctx context.Context, tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("credential: empty access token")
	}
	if err := s.kv.Set(ctx, AccessKey, tok.AccessToken); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if err := s.kv.Set(ctx, RefreshKey, tok.RefreshToken); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// Clear removes both tokens. Called once per logout.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, AccessKey, RefreshKey)
}

// Token reads the current tokens.
func (s *Store) Token(ctx context.Context) (*oauth2.Token, error) {
	access, err := s.kv.Get(ctx, AccessKey)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && access == "") {
		return nil, ErrNoCredential
	}
	if err != nil {
		return nil, err
	}
	refresh, err := s.kv.Get(ctx, RefreshKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}

// Source returns a read-only view that re-reads storage on every call, so a
// login or logout is visible to the very next request.
func (s *Store) Source() oauth2.TokenSource {
	return source{s: s}
}

type source struct {
	s *Store
}

func (src source) Token() (*oauth2.Token, error) {
	return src.s.Token(context.Background())
}
