package repository

import (
	"sync"
	"time"

	"github.com/corebank/ledger/internal/domain"
)

// JournalStore is the append-only record of completed money
// movements. Entries are never edited or deleted.
type JournalStore struct {
	mu      sync.RWMutex
	entries []domain.Transaction
}

func NewJournalStore() *JournalStore {
	return &JournalStore{}
}

func (s *JournalStore) Append(t domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, t)
}

// ByAccount returns, in append order, the entries whose source account
// matches and whose timestamp is not before since.
func (s *JournalStore) ByAccount(accountID string, since time.Time) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range s.entries {
		if t.AccountID == accountID && !t.Timestamp.Before(since) {
			out = append(out, t)
		}
	}
	return out
}

func (s *JournalStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
