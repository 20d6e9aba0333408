package storefront

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Toggle agrega o quita el producto de la lista de deseos y la persiste.
// Devuelve true si quedó agregado.
func (s *Session) Toggle(productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return false, ErrNotInitialized
	}

	next := make([]string, 0, len(s.wish)+1)
	added := true
	for _, id := range s.wish {
		if id == productID {
			added = false
			continue
		}
		next = append(next, id)
	}
	if added {
		next = append(next, productID)
	}
	if err := s.wishlist.Save(next); err != nil {
		return !added, fmt.Errorf("storefront: guardar lista de deseos: %w", err)
	}
	s.wish = next
	return added, nil
}

// Contains indica si el producto está en la lista de deseos.
func (s *Session) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.wish {
		if id == productID {
			return true
		}
	}
	return false
}

// Items copia de la lista de deseos en orden de inserción.
func (s *Session) Items() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.wish...)
}

// FileWishlistStore guarda la lista de deseos como JSON en disco.
type FileWishlistStore struct {
	path string
}

// NewFileWishlistStore usa path como archivo de la lista.
func NewFileWishlistStore(path string) *FileWishlistStore {
	return &FileWishlistStore{path: path}
}

// Load devuelve lista vacía si el archivo aún no existe.
func (f *FileWishlistStore) Load() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("wishlist: archivo corrupto %s: %w", f.path, err)
	}
	return ids, nil
}

// Save escribe a un temporal y renombra para no dejar archivos a medias.
func (f *FileWishlistStore) Save(productIDs []string) error {
	if productIDs == nil {
		productIDs = []string{}
	}
	data, err := json.Marshal(productIDs)
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".wishlist-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
