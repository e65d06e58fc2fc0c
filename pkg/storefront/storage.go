package storefront

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys used by the auth and cart stores.
const (
	StorageKeyUser  = "user"
	StorageKeyToken = "token"
	// legacy key kept for carts written before the server-side cart existed
	StorageKeyCartItems = "cartItems"
)

// Storage is a file-backed key/value store. Each key is one JSON file under
// the directory. Malformed entries are purged on read rather than surfaced
// as errors.
type Storage struct {
	mu  sync.Mutex
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Storage{dir: dir}, nil
}

// Get unmarshals the stored value into out. It returns false when the key is
// absent or its entry was corrupt; corrupt entries are deleted.
func (s *Storage) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		_ = os.Remove(s.path(key))
		return false, nil
	}
	return true, nil
}

func (s *Storage) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), raw, 0o600)
}

func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
