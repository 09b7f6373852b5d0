package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/employee-desk/v2/internal/auth"
)

// Login runs the login action: pending, then fulfilled or rejected. On success the token
// is written to tokens so later requests pick it up.
func Login(ctx context.Context, store *Store, svc auth.Service, tokens auth.TokenStore, creds auth.Credentials) error {
	store.Dispatch(LoginPending{})

	user, token, err := svc.Login(ctx, creds)
	if err == nil && (user == nil || token == "") {
		err = errors.New("login response is missing the user or token")
	}
	if err != nil {
		log.Infof("login failed for %s: %s", creds.Email, err)
		store.Dispatch(LoginRejected{Err: err})
		return err
	}

	if err := tokens.SaveToken(token); err != nil {
		// the session still works for this run; only a restart will ask for credentials again
		log.Errorf("failed to persist token: %s", err)
	}

	log.Infof("logged in as %s (%s)", creds.Email, user.Role)
	store.Dispatch(LoginFulfilled{User: user, Token: token})
	return nil
}

// Logout forgets the persisted token and clears the session.
func Logout(store *Store, tokens auth.TokenStore) error {
	err := tokens.ClearToken()
	store.Dispatch(LoggedOut{})
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// Restore brings back the session of a previous run from the persisted token. It reports
// whether a session was restored; unusable tokens are removed from storage.
func Restore(store *Store, tokens auth.TokenStore, now time.Time) (bool, error) {
	token, err := tokens.Token()
	if err != nil {
		return false, fmt.Errorf("failed to read token: %w", err)
	}
	if token == "" {
		return false, nil
	}

	claims, err := auth.ParseTokenClaims(token, now)
	if err != nil {
		log.Infof("discarding stored token: %s", err)
		if clearErr := tokens.ClearToken(); clearErr != nil {
			return false, fmt.Errorf("failed to clear stale token: %w", clearErr)
		}
		return false, nil
	}

	store.Dispatch(SessionRestored{User: claims.User(), Token: token})
	return true, nil
}
