package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the AES-256 key length used for the session file.
const KeySize = 32

const storageInfo = "dentaldesk-session-v1"

var ErrInvalidKeyLength = errors.New("invalid key length")

// DeriveStorageKey derives the session-file key from a device fingerprint.
func DeriveStorageKey(fingerprint string, salt []byte) ([]byte, error) {
	if fingerprint == "" {
		return nil, errors.New("empty fingerprint")
	}
	h := hkdf.New(sha256.New, []byte(fingerprint), salt, []byte(storageInfo))
	out := make([]byte, KeySize)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateKey returns KeySize random bytes.
func GenerateKey() ([]byte, error) {
	b := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ParseKeyHex decodes a 64-char hex key.
func ParseKeyHex(h string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(h))
	if err != nil {
		return nil, fmt.Errorf("master key hex decode error: %w", err)
	}
	if len(b) != KeySize {
		return nil, fmt.Errorf("master key length must be %d bytes (hex %d chars): %w", KeySize, KeySize*2, ErrInvalidKeyLength)
	}
	return b, nil
}

// ReadMasterKey returns the key from envHex when set, otherwise from the
// hex file at path. ok is false when neither is present.
func ReadMasterKey(envHex, path string) (key []byte, ok bool, err error) {
	h := envHex
	if h == "" {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			if os.IsNotExist(rerr) {
				return nil, false, nil
			}
			return nil, false, rerr
		}
		h = string(data)
	}
	key, err = ParseKeyHex(h)
	if err != nil {
		return nil, false, err
	}
	return key, true, nil
}
