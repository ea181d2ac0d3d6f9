package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileStore(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		sessionDir := filepath.Join(tmpDir, "session")

		store, err := NewFileStore(sessionDir)
		require.NoError(t, err)
		assert.NotNil(t, store)

		info, err := os.Stat(sessionDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	t.Run("uses default directory when baseDir is empty", func(t *testing.T) {
		store, err := NewFileStore("")
		if err != nil {
			assert.Contains(t, err.Error(), "home directory")
		} else {
			assert.NotNil(t, store)
		}
	})
}

func TestFileStore_ReadWrite(t *testing.T) {
	t.Run("read on empty store yields no fields", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		fields, err := store.Read()
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("round-trips all fields", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		in := Fields{
			KeyAccessToken: "tok1",
			KeyUserID:      "7",
			KeyUserRole:    "PASSENGER",
			KeyUserEmail:   "a@b.com",
			KeyUserName:    "Asha",
			KeyLoginTime:   "2025-06-01T10:00:00Z",
		}
		require.NoError(t, store.Write(in))

		out, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("session file has restrictive permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewFileStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Write(Fields{KeyAccessToken: "tok1"}))

		info, err := os.Stat(filepath.Join(tmpDir, "session.json"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("write replaces prior fields entirely", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write(Fields{KeyAccessToken: "tok1", KeyUserEmail: "a@b.com"}))
		require.NoError(t, store.Write(Fields{KeyAccessToken: "tok2"}))

		out, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, Fields{KeyAccessToken: "tok2"}, out)
	})

	t.Run("leaves no temp file behind", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewFileStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Write(Fields{KeyAccessToken: "tok1"}))

		_, err = os.Stat(filepath.Join(tmpDir, "session.json.tmp"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestFileStore_Clear(t *testing.T) {
	t.Run("removes stored fields", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write(Fields{KeyAccessToken: "tok1"}))
		require.NoError(t, store.Clear())

		fields, err := store.Read()
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("clearing an empty store is a no-op", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
	})
}

func TestMemoryStore(t *testing.T) {
	t.Run("round-trips and clears", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Write(Fields{KeyAccessToken: "tok1", KeyUserRole: "DRIVER"}))

		out, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "tok1", out[KeyAccessToken])

		require.NoError(t, store.Clear())
		out, err = store.Read()
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("read returns a copy", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Write(Fields{KeyAccessToken: "tok1"}))

		out, err := store.Read()
		require.NoError(t, err)
		out[KeyAccessToken] = "mutated"

		again, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "tok1", again[KeyAccessToken])
	})
}
