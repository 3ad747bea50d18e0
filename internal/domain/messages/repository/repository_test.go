package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextRepository_Defaults(t *testing.T) {
	r, err := NewTextRepository("")
	require.NoError(t, err)

	for key := range defaults {
		text, err := r.GetMessageByKey(key)
		require.NoError(t, err)
		assert.NotEmpty(t, text, key)
	}

	_, err = r.GetMessageByKey("missing")
	assert.Error(t, err)
}

func TestNewTextRepository_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("welcome: Привет!\n"), 0o644))

	r, err := NewTextRepository(path)
	require.NoError(t, err)

	text, err := r.GetMessageByKey(WelcomeKey)
	require.NoError(t, err)
	assert.Equal(t, "Привет!", text)

	text, err = r.GetMessageByKey(MenuKey)
	require.NoError(t, err)
	assert.Equal(t, defaults[MenuKey], text)
}

func TestNewTextRepository_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewTextRepository(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("greeting: hi\n"), 0o644))
	_, err = NewTextRepository(unknown)
	assert.ErrorContains(t, err, "unknown message key")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("welcome: [unclosed\n"), 0o644))
	_, err = NewTextRepository(broken)
	assert.Error(t, err)
}
