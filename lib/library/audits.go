package library

import (
	"path/filepath"

	"shelfd/lib/record"
)

// AuditStore is the append-only audit log collection, backed by audits.json.
// There is deliberately no update or remove surface.
type AuditStore struct {
	store *record.Store[AuditEntry, *AuditEntry]
}

// NewAuditStore opens (or bootstraps) the audit collection under dir.
func NewAuditStore(dir string) (*AuditStore, error) {
	s, err := record.NewStore[AuditEntry, *AuditEntry](filepath.Join(dir, "audits.json"))
	if err != nil {
		return nil, err
	}
	return &AuditStore{store: s}, nil
}

func (a *AuditStore) Add(entry AuditEntry) (AuditEntry, error) {
	return a.store.Add(entry)
}

func (a *AuditStore) GetAll() ([]AuditEntry, error) {
	return a.store.GetAll()
}
