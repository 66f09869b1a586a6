package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	plain := []byte(`{"token":"abc"}`)
	blob, err := Seal(key, plain)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(blob, plain))

	got, err := Open(key, blob)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestOpenWrongKey(t *testing.T) {
	k1, _ := GenerateKey()
	k2, _ := GenerateKey()
	blob, err := Seal(k1, []byte("secret"))
	require.NoError(t, err)

	_, err = Open(k2, blob)
	assert.Error(t, err)

	_, err = Open(k1, blob[:4])
	assert.Error(t, err)
}

func TestSealRejectsShortKey(t *testing.T) {
	_, err := Seal([]byte("short"), []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestDeriveStorageKey(t *testing.T) {
	a, err := DeriveStorageKey("machine-1", []byte("salt"))
	require.NoError(t, err)
	b, err := DeriveStorageKey("machine-1", []byte("salt"))
	require.NoError(t, err)
	c, err := DeriveStorageKey("machine-2", []byte("salt"))
	require.NoError(t, err)

	assert.Len(t, a, KeySize)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err = DeriveStorageKey("", nil)
	assert.Error(t, err)
}

func TestReadMasterKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.key")

	_, ok, err := ReadMasterKey("", path)
	require.NoError(t, err)
	assert.False(t, ok)

	hexKey := strings.Repeat("ab", KeySize)
	require.NoError(t, os.WriteFile(path, []byte(hexKey+"\n"), 0600))
	key, ok, err := ReadMasterKey("", path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, key, KeySize)

	_, _, err = ReadMasterKey("zz", path)
	assert.Error(t, err)

	_, _, err = ReadMasterKey("abcd", path)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}
