package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ueberboese/ueberboese-api/internal/service"
)

const accountDocumentDirName = "accounts"

// fileAccountDocumentStore keeps one <accountId>.xml per account under <data.dir>/accounts.
type fileAccountDocumentStore struct {
	dir string
}

func NewFileAccountDocumentStore(dataDir string) (service.AccountDocumentStore, error) {
	dir := filepath.Join(dataDir, accountDocumentDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create account document dir: %w", err)
	}
	return &fileAccountDocumentStore{dir: dir}, nil
}

func validateAccountID(accountID string) error {
	if accountID == "" || accountID == "." || accountID == ".." ||
		strings.ContainsAny(accountID, `/\`) || strings.ContainsRune(accountID, 0) {
		return fmt.Errorf("invalid account id %q", accountID)
	}
	return nil
}

func (s *fileAccountDocumentStore) path(accountID string) string {
	return filepath.Join(s.dir, accountID+".xml")
}

func (s *fileAccountDocumentStore) Load(ctx context.Context, accountID string) ([]byte, error) {
	if err := validateAccountID(accountID); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path(accountID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Save writes through a temp file and rename so readers never see a partial document.
func (s *fileAccountDocumentStore) Save(ctx context.Context, accountID string, raw []byte) error {
	if err := validateAccountID(accountID); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, accountID+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path(accountID)); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
