package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/corebank/ledger/internal/domain"
)

// AccountStore is the in-memory account registry. It guards the map
// itself; serialization of mutations to an individual account is the
// ledger's job.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[string]domain.Account)}
}

func (s *AccountStore) Create(account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.ID()]; ok {
		return fmt.Errorf("AccountStore.Create: %w", domain.ErrDuplicateAccountID)
	}
	s.accounts[account.ID()] = account
	return nil
}

func (s *AccountStore) Get(id string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("AccountStore.Get: %w", domain.ErrAccountNotFound)
	}
	return account, nil
}

// List returns all accounts ordered by id, so batch operations visit
// accounts deterministically.
func (s *AccountStore) List() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (s *AccountStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
