// Package credential owns the single set of OAuth2 credentials the gateway
// uses for every outbound YouTube call. Credentials live in memory only and
// are replaced wholesale by each successful code exchange.
package credential

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"youtube-manager/domain/apperror"
	"youtube-manager/domain/model"
	"youtube-manager/infrastructure/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// Scopes requested during authorization.
var Scopes = []string{
	youtube.YoutubeScope,
	youtube.YoutubeForceSslScope,
}

// Config is the static OAuth2 client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Endpoint defaults to google.Endpoint when empty.
	Endpoint oauth2.Endpoint
}

// Store holds the current credentials.
//
// Exchanges are versioned: each call takes a ticket before talking to the
// provider, and its result is only stored when no exchange holding a later
// ticket has been stored already. The newest authorization wins regardless
// of which provider round-trip finishes first.
type Store struct {
	oauth *oauth2.Config

	mu      sync.RWMutex
	creds   *model.Credentials
	version uint64
	tickets uint64
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore(cfg Config) *Store {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	return &Store{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       Scopes,
			Endpoint:     endpoint,
		},
		now: time.Now,
	}
}

// AuthURL builds the provider authorization URL. It requests offline
// access and forces the consent screen so a refresh token is always issued.
func (s *Store) AuthURL() string {
	return s.oauth.AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens and replaces the stored
// credentials on success. When a later exchange has already stored its
// result, this one is discarded and the stored credentials are returned.
func (s *Store) Exchange(ctx context.Context, code string) (model.Credentials, error) {
	const op = "oauth2.exchange"
	if strings.TrimSpace(code) == "" {
		return model.Credentials{}, apperror.New(apperror.KindAuthExchange, op, "authorization code is empty")
	}

	s.mu.Lock()
	s.tickets++
	ticket := s.tickets
	s.mu.Unlock()

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return model.Credentials{}, exchangeError(op, err)
	}
	if token.AccessToken == "" {
		return model.Credentials{}, apperror.New(apperror.KindAuthExchange, op, "provider returned no access token")
	}

	creds := model.Credentials{
		AccessToken:   token.AccessToken,
		RefreshToken:  token.RefreshToken,
		TokenType:     token.Type(),
		Expiry:        token.Expiry,
		GrantedScopes: grantedScopes(token, s.oauth.Scopes),
		ObtainedAt:    s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.version {
		logger.GetLogger().WithFields(map[string]interface{}{
			"ticket":  ticket,
			"current": s.version,
		}).Warn("Discarding credentials from a superseded code exchange")
		return s.copyLocked(), nil
	}
	s.creds = &creds
	s.version = ticket
	logger.GetLogger().WithFields(map[string]interface{}{
		"hasRefreshToken": creds.RefreshToken != "",
		"expiry":          creds.Expiry,
		"scopes":          creds.GrantedScopes,
	}).Info("Stored YouTube credentials")
	return creds, nil
}

// Status reports whether usable credentials are stored.
func (s *Store) Status() model.AuthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.AuthStatus{Authenticated: s.creds.Usable()}
}

// Credentials returns a copy of the stored credentials.
func (s *Store) Credentials() (model.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return model.Credentials{}, false
	}
	return s.copyLocked(), true
}

func (s *Store) copyLocked() model.Credentials {
	c := *s.creds
	c.GrantedScopes = append([]string(nil), s.creds.GrantedScopes...)
	return c
}

// Token implements oauth2.TokenSource over the stored credentials. The
// token is handed out as-is and never refreshed.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.creds.Usable() {
		return nil, apperror.New(apperror.KindAuthRequired, "oauth2.token", "no credentials stored")
	}
	return &oauth2.Token{
		AccessToken: s.creds.AccessToken,
		TokenType:   s.creds.TokenType,
	}, nil
}

func exchangeError(op string, err error) error {
	appErr := apperror.Wrap(apperror.KindAuthExchange, op, "provider rejected the authorization code", err)
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil {
			appErr.Status = retrieveErr.Response.StatusCode
		}
		appErr.Detail = string(retrieveErr.Body)
	}
	return appErr
}

func grantedScopes(token *oauth2.Token, requested []string) []string {
	if raw, ok := token.Extra("scope").(string); ok && raw != "" {
		return strings.Fields(raw)
	}
	return append([]string(nil), requested...)
}
