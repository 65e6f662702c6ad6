// Package session owns the signed-in identity and its persisted credential.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/orgball2608/reels-client/internal/domain"
	"github.com/orgball2608/reels-client/internal/reels"
	"github.com/orgball2608/reels-client/internal/repositories/kv"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
	"github.com/orgball2608/reels-client/pkg/logger"
	"go.uber.org/fx"
)

const defaultRegisterMessage = "Failed to register. Please try again."

var ErrNoCredential = errors.New("no stored credential")

// Reader is the read-only view other components get of the session.
type Reader interface {
	Identity() *domain.Identity
	Token(ctx context.Context) (string, error)
}

type Opts struct {
	fx.In

	API     reels.Client
	Storage kv.Repository
	Logger  logger.Logger
}

// Store holds at most one identity. It does not serialise overlapping
// Login/Register/Logout calls; the host keeps one in flight at a time.
type Store struct {
	api     reels.Client
	storage kv.Repository
	logger  logger.Logger

	mu       sync.RWMutex
	identity *domain.Identity
}

func New(opts Opts) *Store {
	return &Store{
		api:     opts.API,
		storage: opts.Storage,
		logger:  opts.Logger.WithComponent("Session"),
	}
}

var _ Reader = (*Store)(nil)

// Bootstrap restores a persisted session. Any storage problem leaves the
// store logged out.
func (s *Store) Bootstrap(ctx context.Context) {
	token, err := s.storage.Get(ctx, kv.KeyToken)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("Failed to read stored token", "error", err)
		}
		s.setIdentity(nil)
		return
	}

	raw, err := s.storage.Get(ctx, kv.KeyUser)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("Failed to read stored user", "error", err)
		}
		s.setIdentity(nil)
		return
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		s.logger.Warn("Stored user is unreadable", "error", err)
		s.setIdentity(nil)
		return
	}
	if token == "" || identity.ID == "" {
		s.setIdentity(nil)
		return
	}

	s.setIdentity(&identity)
	s.logger.Info("Session restored", "user_id", identity.ID, "username", identity.Username)
}

// Login reports only whether it worked; the reason is deliberately not surfaced.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	res, err := s.api.SignIn(ctx, username, password)
	if err != nil {
		s.logger.Info("Login failed", "username", username, "error", err)
		return false
	}

	if err := s.establish(ctx, res); err != nil {
		s.logger.Error("Login succeeded but session could not be saved", "username", username, "error", err)
		return false
	}
	return true
}

// Register returns an error whose message is safe to show: the server's
// explanation when it gave one, a generic sentence otherwise.
func (s *Store) Register(ctx context.Context, username, password string, image *domain.ProfileImage) error {
	req := reels.RegisterRequest{
		Username:   username,
		Password:   password,
		ProfilePic: profileAttachment(image),
	}

	res, err := s.api.Register(ctx, req)
	if err != nil {
		s.logger.Error("Register failed", "username", username, "error", err)
		msg := apperrors.ServerMessage(err)
		if msg == "" {
			msg = defaultRegisterMessage
		}
		return apperrors.WrapWithCode(err, apperrors.GetCode(err), msg)
	}

	if err := s.establish(ctx, res); err != nil {
		s.logger.Error("Registered but session could not be saved", "username", username, "error", err)
		return apperrors.Wrap(err, defaultRegisterMessage)
	}
	return nil
}

// Logout always leaves the store logged out, even if the storage delete fails.
func (s *Store) Logout(ctx context.Context) {
	if err := s.storage.DeleteAll(ctx, kv.SessionKeys); err != nil {
		s.logger.Warn("Failed to clear stored session", "error", err)
	}
	s.setIdentity(nil)
	s.logger.Info("Logged out")
}

// Identity returns a copy of the current identity, or nil.
func (s *Store) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

// Token reads the credential from storage at call time.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.storage.Get(ctx, kv.KeyToken)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// establish persists token and user together, then publishes the identity.
// A failed write is rolled back on disk and leaves memory untouched.
func (s *Store) establish(ctx context.Context, res *domain.AuthResult) error {
	if res == nil || res.Token == "" {
		return apperrors.BadResponse("missing token")
	}

	user, err := json.Marshal(res.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	err = s.storage.SetAll(ctx, map[string]string{
		kv.KeyToken: res.Token,
		kv.KeyUser:  string(user),
	})
	if err != nil {
		if delErr := s.storage.DeleteAll(ctx, kv.SessionKeys); delErr != nil {
			s.logger.Warn("Failed to roll back partial session", "error", delErr)
		}
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}

	identity := res.User
	s.setIdentity(&identity)
	s.logger.Info("Signed in", "user_id", identity.ID, "username", identity.Username)
	return nil
}

func (s *Store) setIdentity(identity *domain.Identity) {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
}

func profileAttachment(image *domain.ProfileImage) *reels.Attachment {
	if image == nil || image.Path == "" {
		return nil
	}

	source := image.FileName
	if source == "" {
		source = filepath.Base(image.Path)
	}
	ext := strings.TrimPrefix(filepath.Ext(source), ".")
	if ext == "" {
		ext = "jpg"
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return &reels.Attachment{
		Path:        image.Path,
		FileName:    "profile." + ext,
		ContentType: contentType,
	}
}
