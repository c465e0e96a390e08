// Package storage implementa el almacenamiento local de artefactos: firmas y
// logos subidos por los usuarios y PDFs generados. Las URLs públicas cuelgan
// de /uploads/ y se sirven como estáticos desde el servidor HTTP.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dverdu/albaranes-api/internal/application/notes"
)

const urlPrefix = "/uploads/"

var _ notes.FileStore = (*LocalStore)(nil)

// LocalStore guarda artefactos bajo un directorio raíz con subdirectorios por
// tipo: signatures/, logos/ y pdfs/.
type LocalStore struct {
	root string
}

// NewLocalStore crea el almacenamiento y sus subdirectorios.
func NewLocalStore(root string) (*LocalStore, error) {
	for _, sub := range []string{"signatures", "logos", "pdfs"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("storage: crear %s: %w", sub, err)
		}
	}
	return &LocalStore{root: root}, nil
}

// Root devuelve el directorio raíz (para montar el estático de /uploads).
func (s *LocalStore) Root() string { return s.root }

// SaveSignature guarda la imagen de una firma y devuelve su URL pública.
func (s *LocalStore) SaveSignature(ext string, data []byte) (string, error) {
	return s.save("signatures", uuid.New().String()+ext, data)
}

// SaveLogo guarda el logo de un usuario y devuelve su URL pública.
func (s *LocalStore) SaveLogo(ext string, data []byte) (string, error) {
	return s.save("logos", uuid.New().String()+ext, data)
}

// SavePDF persiste el PDF de un albarán y devuelve su URL pública.
func (s *LocalStore) SavePDF(noteID string, data []byte) (string, error) {
	return s.save("pdfs", "albaran-"+noteID+".pdf", data)
}

func (s *LocalStore) save(sub, name string, data []byte) (string, error) {
	path := filepath.Join(s.root, sub, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: escribir %s: %w", name, err)
	}
	return urlPrefix + sub + "/" + name, nil
}

// Remove borra un artefacto previamente guardado. Las URLs ajenas al
// almacenamiento y los artefactos ya inexistentes no son un error.
func (s *LocalStore) Remove(url string) error {
	path, ok := s.AbsPath(url)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: borrar %s: %w", url, err)
	}
	return nil
}

// ReadByURL recupera los bytes de un artefacto previamente guardado.
func (s *LocalStore) ReadByURL(url string) ([]byte, error) {
	path, ok := s.AbsPath(url)
	if !ok {
		return nil, fmt.Errorf("storage: URL fuera del almacenamiento: %s", url)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: leer %s: %w", url, err)
	}
	return data, nil
}

// AbsPath traduce una URL de artefacto a ruta local; false si la URL no apunta
// a este almacenamiento. El nombre se limpia para impedir escapes con "..".
func (s *LocalStore) AbsPath(url string) (string, bool) {
	if !strings.HasPrefix(url, urlPrefix) {
		return "", false
	}
	rel := filepath.Clean(strings.TrimPrefix(url, urlPrefix))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", false
	}
	return filepath.Join(s.root, rel), true
}

// Exists indica si la URL apunta a un artefacto existente del almacenamiento.
func (s *LocalStore) Exists(url string) bool {
	path, ok := s.AbsPath(url)
	if !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
