// Package media guarda en disco las imágenes subidas desde el panel.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadBytes tamaño máximo aceptado por archivo.
const MaxUploadBytes = 5 << 20

var allowedExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// LocalStorage almacena archivos bajo Root con nombres únicos; la ruta devuelta es relativa a Root
// y usa "/" como separador.
type LocalStorage struct {
	Root string
}

// NewLocalStorage crea el almacenamiento y su directorio raíz.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("media: crear %s: %w", root, err)
	}
	return &LocalStorage{Root: root}, nil
}

// Save copia r en dir/<uuid><ext>. Rechaza extensiones que no son de imagen y archivos demasiado grandes.
func (s *LocalStorage) Save(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("media: extensión %q no permitida", ext)
	}
	dir = path.Clean("/" + filepath.ToSlash(dir))[1:]
	rel := path.Join(dir, uuid.NewString()+ext)

	dst := filepath.Join(s.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("media: %w", err)
	}
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("media: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, MaxUploadBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxUploadBytes {
		err = fmt.Errorf("media: el archivo supera %d bytes", MaxUploadBytes)
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return rel, nil
}
