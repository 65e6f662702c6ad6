package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/orgball2608/reels-client/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	repo := NewFile(path, logger.Nop())

	_, err := repo.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.SetAll(ctx, map[string]string{
		KeyToken: "tok-1",
		KeyUser:  `{"id":"u1","username":"alice"}`,
	}))

	// A second instance sees what the first one wrote.
	other := NewFile(path, logger.Nop())
	token, err := other.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, other.DeleteAll(ctx, SessionKeys))

	_, err = repo.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepositoryKeepsUnrelatedKeys(t *testing.T) {
	ctx := context.Background()
	repo := NewFile(filepath.Join(t.TempDir(), "kv.json"), logger.Nop())

	require.NoError(t, repo.SetAll(ctx, map[string]string{"theme": "dark", KeyToken: "t"}))
	require.NoError(t, repo.DeleteAll(ctx, []string{KeyToken, "missing"}))

	theme, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}

func TestFileRepositoryCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFile(path, logger.Nop()).Get(context.Background(), KeyToken)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileRepositoryRecoversFromCorruptDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte("{trunc"), 0o600))
	repo := NewFile(path, logger.Nop())

	require.NoError(t, repo.DeleteAll(ctx, SessionKeys))
	_, err := repo.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(path, []byte("{trunc"), 0o600))
	require.NoError(t, repo.SetAll(ctx, map[string]string{KeyToken: "tok-2"}))

	token, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}
