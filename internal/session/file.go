package session

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrSecretRequired — файл сессии зашифрован, а секрет не задан.
var ErrSecretRequired = errors.New("session file is encrypted: secret required")

// Параметры argon2id для ключа шифрования файла.
const (
	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
	saltSize   = 16
)

// FileStore хранит пару в JSON-файле с правами 0600.
//
// Если задан secret, содержимое шифруется XChaCha20-Poly1305 ключом,
// выведенным из secret через argon2id (соль — своя на каждую запись).
type FileStore struct {
	path   string
	secret []byte
}

// sealed — формат зашифрованного файла.
type sealed struct {
	Version    int    `json:"version"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func NewFileStore(path, secret string) *FileStore {
	fs := &FileStore{path: path}
	if secret != "" {
		fs.secret = []byte(secret)
	}

	return fs
}

// Path возвращает путь файла сессии.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(ctx context.Context) (Credentials, error) {
	const op = "session/FileStore.Load"

	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("%s: read: %w", op, err)
	}

	var envelope struct {
		Ciphertext []byte `json:"ciphertext"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Credentials{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	if envelope.Ciphertext != nil {
		if f.secret == nil {
			return Credentials{}, fmt.Errorf("%s: %w", op, ErrSecretRequired)
		}

		raw, err = f.open(raw)
		if err != nil {
			return Credentials{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var c Credentials
	if err := json.Unmarshal(raw, &c); err != nil {
		return Credentials{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	return c, nil
}

func (f *FileStore) Save(ctx context.Context, c Credentials) error {
	const op = "session/FileStore.Save"

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	if f.secret != nil {
		data, err = f.seal(data)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := writeAtomic(f.path, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (f *FileStore) Clear(ctx context.Context) error {
	const op = "session/FileStore.Clear"

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (f *FileStore) seal(plain []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}

	aead, err := chacha20poly1305.NewX(f.key(salt))
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	return json.Marshal(sealed{
		Version:    1,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plain, nil),
	})
}

func (f *FileStore) open(raw []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	aead, err := chacha20poly1305.NewX(f.key(s.Salt))
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}

	if len(s.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("bad nonce size %d", len(s.Nonce))
	}

	plain, err := aead.Open(nil, s.Nonce, s.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	return plain, nil
}

func (f *FileStore) key(salt []byte) []byte {
	return argon2.IDKey(f.secret, salt, kdfTime, kdfMemory, kdfThreads, chacha20poly1305.KeySize)
}

// writeAtomic пишет во временный файл рядом и переименовывает его.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}
