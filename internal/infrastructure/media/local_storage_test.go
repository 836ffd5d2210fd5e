package media

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root)
	require.NoError(t, err)

	rel, err := s.Save(context.Background(), "product", "Foto.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "product/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	other, err := s.Save(context.Background(), "product", "Foto.PNG", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotEqual(t, rel, other)
}

func TestLocalStorage_StaysUnderRoot(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	rel, err := s.Save(context.Background(), "../../etc", "a.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "etc/"))
}

func TestLocalStorage_Rejects(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "product", "script.sh", strings.NewReader("x"))
	assert.Error(t, err)

	big := bytes.Repeat([]byte("a"), MaxUploadBytes+1)
	_, err = s.Save(context.Background(), "product", "big.png", bytes.NewReader(big))
	assert.Error(t, err)
	entries, err := os.ReadDir(filepath.Join(root, "product"))
	require.NoError(t, err)
	assert.Empty(t, entries, "el archivo parcial se elimina")
}
