package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/session/domain"
)

var _ domain.TokenRepository = (*FileTokenRepo)(nil)

// FileTokenRepo keeps the token in a small JSON document on disk, readable by the owner only.
type FileTokenRepo struct {
	path string
	mu   sync.Mutex
	log  *logger.Logger
}

func NewFileTokenRepo(path string, log *logger.Logger) *FileTokenRepo {
	return &FileTokenRepo{path: path, log: log}
}

func (r *FileTokenRepo) GetToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return "", err
	}
	return doc[domain.TokenKey], nil
}

func (r *FileTokenRepo) SaveToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		r.log.Warnf("token file %s unreadable, overwriting: %v", r.path, err)
		doc = map[string]string{}
	}
	if token == "" {
		delete(doc, domain.TokenKey)
	} else {
		doc[domain.TokenKey] = token
	}
	return r.write(doc)
}

func (r *FileTokenRepo) read() (map[string]string, error) {
	b, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	doc := map[string]string{}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode token file: %w", err)
	}
	return doc, nil
}

func (r *FileTokenRepo) write(doc map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return os.Rename(tmp, r.path)
}
