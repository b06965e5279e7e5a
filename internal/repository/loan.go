package repository

import (
	"fmt"
	"sync"

	"github.com/corebank/ledger/internal/domain"
	"github.com/google/uuid"
)

// LoanStore holds issued loans. Returned pointers are the live
// entities; the loan service serializes payment processing.
type LoanStore struct {
	mu    sync.RWMutex
	loans map[uuid.UUID]*domain.Loan
}

func NewLoanStore() *LoanStore {
	return &LoanStore{loans: make(map[uuid.UUID]*domain.Loan)}
}

func (s *LoanStore) Create(l *domain.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[l.ID]; ok {
		return fmt.Errorf("LoanStore.Create: duplicate loan id %s", l.ID)
	}
	s.loans[l.ID] = l
	return nil
}

func (s *LoanStore) Get(id uuid.UUID) (*domain.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.loans[id]
	if !ok {
		return nil, fmt.Errorf("LoanStore.Get: %w", domain.ErrLoanNotFound)
	}
	return l, nil
}

func (s *LoanStore) List() []*domain.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Loan, 0, len(s.loans))
	for _, l := range s.loans {
		out = append(out, l)
	}
	return out
}

func (s *LoanStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.loans)
}
