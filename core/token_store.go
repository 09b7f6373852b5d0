package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/employee-desk/v2/internal/auth"
	"github.com/employee-desk/v2/internal/config"
)

const tokenFileName = ".token"

// FileTokenStore keeps the bearer token in a file readable only by the user.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(dataDir string) (*FileTokenStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dataDir, err)
	}
	return &FileTokenStore{path: filepath.Join(dataDir, tokenFileName)}, nil
}

// Path returns the location of the token file.
func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStore) SaveToken(token string) error {
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", s.path, err)
	}
	log.Debugf("token saved to %s", s.path)
	return nil
}

func (s *FileTokenStore) ClearToken() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file %s: %w", s.path, err)
	}
	return nil
}

func (s *FileTokenStore) Close() error {
	return nil
}

// TokenStore is an auth.TokenStore that may hold resources.
type TokenStore interface {
	auth.TokenStore
	io.Closer
}

// OpenTokenStore opens the token storage backend selected in cfg.
func OpenTokenStore(cfg *config.Config) (TokenStore, error) {
	switch cfg.TokenStore {
	case config.TokenStoreFile:
		store, err := NewFileTokenStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.TokenStoreSQLite:
		db, err := NewDatabase(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		if err := db.Connect(); err != nil {
			return nil, err
		}
		return NewDatabaseTokenStore(db), nil
	default:
		return nil, fmt.Errorf("unknown token store: %s", cfg.TokenStore)
	}
}
