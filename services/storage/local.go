package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PhotoStore accepts a binary photo payload and returns a durable public
// URL. The game only ever stores and forwards that URL, it never inspects
// the content again.
type PhotoStore interface {
	Save(ownerID string, filename string, r io.Reader) (string, error)
}

// LocalStore keeps photos on disk under Dir and serves them below BaseURL
// (the router exposes Dir as static files).
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating photo dir: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Save(ownerID string, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	// Owner plus timestamp keeps re-uploads from clobbering each other
	name := fmt.Sprintf("%s-%d-%s%s", ownerID, time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return s.BaseURL + "/" + name, nil
}
