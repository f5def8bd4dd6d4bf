package keybackend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/challengedb/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSecretFromFile_Valid(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "challenge-database-api\n")

	secret, err := keybackend.LoadSecretFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "challenge-database-api", secret)
}

func TestLoadSecretFromFile_KeepsInnerWhitespace(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "  two words \r\n")

	secret, err := keybackend.LoadSecretFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two words", secret)
}

func TestLoadSecretFromFile_Empty(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, " \n\t")

	_, err := keybackend.LoadSecretFromFile(path)
	assert.ErrorIs(t, err, keybackend.ErrEmptySecret)
}

func TestLoadSecretFromFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := keybackend.LoadSecretFromFile(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "read secret file")
}

func writeTestFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "secret")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}
