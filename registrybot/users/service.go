package users

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"unicode"

	"github.com/gloudstoun/telegram-bot-project/core/logger"
)

const logComponent = "service.users"

// Store is the persistence contract required by the service.
type Store interface {
	Add(ctx context.Context, name, passHash string) error
	NameTaken(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]User, error)
}

// Service implements account registration and listing on top of a Store.
type Service struct {
	store Store
}

// NewService builds a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ValidName reports whether name is acceptable: non-empty and letters only.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidPassword enforces the password policy: at least 8 runes with at least
// one letter and one digit.
func ValidPassword(password string) bool {
	runes := []rune(password)
	if len(runes) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// Digest returns the lowercase hex SHA-256 digest of the password.
// The output is deterministic: identical input always yields identical output.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// NameAvailable reports whether the name passes validation and is not yet registered.
func (s *Service) NameAvailable(ctx context.Context, name string) (bool, error) {
	if !ValidName(name) {
		return false, ErrInvalidName
	}
	taken, err := s.store.NameTaken(ctx, name)
	if err != nil {
		logger.Error(ctx, logComponent, "users.lookup",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return false, err
	}
	return !taken, nil
}

// Register validates inputs, hashes the password, and persists the account.
// It returns ErrInvalidName, ErrWeakPassword, ErrNameTaken, or a store error.
func (s *Service) Register(ctx context.Context, name, password string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if !ValidPassword(password) {
		return ErrWeakPassword
	}

	err := s.store.Add(ctx, name, Digest(password))
	switch {
	case err == nil:
		logger.Info(ctx, logComponent, "users.register",
			slog.String("status", "ok"),
			slog.String("name", name),
		)
		return nil
	case errors.Is(err, ErrNameTaken):
		logger.Warn(ctx, logComponent, "users.register",
			slog.String("status", "fail"),
			slog.String("name", name),
		)
		return ErrNameTaken
	default:
		logger.Error(ctx, logComponent, "users.register",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return err
	}
}

// Users returns registered accounts in insertion order.
func (s *Service) Users(ctx context.Context) ([]User, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		logger.Error(ctx, logComponent, "users.list",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	return list, nil
}
