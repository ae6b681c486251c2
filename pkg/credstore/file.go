package credstore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File stores the credential in a single file with 0600 permissions,
// optionally encrypted at rest with AES-256-GCM.
type File struct {
	path string
	key  []byte // nil means plaintext storage
	mu   sync.Mutex
}

// FileOption configures a file-backed credential store.
type FileOption func(*File)

// WithEncryptionKey enables AES-256-GCM encryption of the stored credential.
// The key must be exactly 32 bytes.
func WithEncryptionKey(key []byte) FileOption {
	return func(f *File) {
		f.key = key
	}
}

// NewFile creates a file-backed credential store at the given path. The
// parent directory is created on the first Save.
func NewFile(path string, opts ...FileOption) (*File, error) {
	if path == "" {
		return nil, errors.New("credstore: path cannot be empty")
	}
	f := &File{path: path}
	for _, opt := range opts {
		opt(f)
	}
	if f.key != nil && len(f.key) != 32 {
		return nil, ErrInvalidKey
	}
	return f, nil
}

func (f *File) Load(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Join(ErrUnavailable, err)
	}

	content := strings.TrimSpace(string(raw))
	if content == "" {
		return "", nil
	}
	if f.key == nil {
		return content, nil
	}
	return f.open(content)
}

func (f *File) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	content := token
	if f.key != nil {
		sealed, err := f.seal(token)
		if err != nil {
			return err
		}
		content = sealed
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Join(ErrUnavailable, err)
		}
	}
	if err := os.WriteFile(f.path, []byte(content), 0o600); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

func (f *File) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// seal encrypts the token and returns base64(nonce + ciphertext + tag).
func (f *File) seal(token string) (string, error) {
	block, err := aes.NewCipher(f.key)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(token), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (f *File) open(content string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}
	block, err := aes.NewCipher(f.key)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}
	if len(sealed) < gcm.NonceSize() {
		return "", ErrDecryptionFailed
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}
	return string(plain), nil
}
