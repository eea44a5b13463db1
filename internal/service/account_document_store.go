package service

import "context"

// AccountDocumentStore persists one raw upstream document per account id.
// Writes are atomic per key; the store gives no ordering across callers.
type AccountDocumentStore interface {
	// Load returns nil, nil when nothing is stored for accountID.
	Load(ctx context.Context, accountID string) ([]byte, error)
	Save(ctx context.Context, accountID string, raw []byte) error
}
