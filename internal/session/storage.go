package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dentaldesk/internal/crypto"
	"dentaldesk/internal/utils"
)

// Storage is durable key/value storage. Each call is atomic per key.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStorage keeps values in process memory.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileStorage persists a JSON object to a single file. With a key the file
// is AES-GCM sealed (session.json.enc), otherwise it is plain (session.json).
type FileStorage struct {
	path string
	key  []byte
	mu   sync.Mutex
}

func NewFileStorage(dir string, key []byte) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	name := "session.json"
	if key != nil {
		if len(key) != crypto.KeySize {
			return nil, crypto.ErrInvalidKeyLength
		}
		name = "session.json.enc"
	}
	return &FileStorage{path: filepath.Join(dir, name), key: key}, nil
}

// Path is the backing file.
func (s *FileStorage) Path() string { return s.path }

// Encrypted reports whether the file is sealed.
func (s *FileStorage) Encrypted() bool { return s.key != nil }

func (s *FileStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		// unreadable (e.g. sealed with another key): start over
		m = map[string]string{}
	}
	m[key] = value
	return s.write(m)
}

func (s *FileStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		m = map[string]string{}
	}
	if _, ok := m[key]; !ok && err == nil {
		return nil
	}
	delete(m, key)
	if len(m) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return s.write(m)
}

func (s *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if s.key != nil {
		if data, err = crypto.Open(s.key, data); err != nil {
			return nil, fmt.Errorf("open session file: %w", err)
		}
	}
	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return m, nil
}

// write replaces the file via rename so readers never see a partial file.
func (s *FileStorage) write(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if s.key != nil {
		if data, err = crypto.Seal(s.key, data); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// StorageKey picks the session-file key: MASTER_KEY_HEX, then the master.key
// file, then a key derived from the device fingerprint. A nil key with a nil
// error means no source was available and the file stays plain.
func StorageKey(masterHex, masterPath string) ([]byte, string, error) {
	key, ok, err := crypto.ReadMasterKey(masterHex, masterPath)
	if err != nil {
		return nil, "", err
	}
	if ok {
		return key, "master key", nil
	}
	fp, err := utils.DeviceFingerprint()
	if err != nil {
		return nil, "none", nil
	}
	key, err = crypto.DeriveStorageKey(fp, []byte("dentaldesk"))
	if err != nil {
		return nil, "", err
	}
	return key, "device fingerprint", nil
}
