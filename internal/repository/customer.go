package repository

import (
	"fmt"
	"sync"

	"github.com/corebank/ledger/internal/domain"
)

type CustomerStore struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{customers: make(map[string]domain.Customer)}
}

func (s *CustomerStore) Create(c domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[c.ID]; ok {
		return fmt.Errorf("CustomerStore.Create: %w", domain.ErrDuplicateCustomerID)
	}
	s.customers[c.ID] = c
	return nil
}

func (s *CustomerStore) Get(id string) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return domain.Customer{}, fmt.Errorf("CustomerStore.Get: %w", domain.ErrCustomerNotFound)
	}
	return c, nil
}

func (s *CustomerStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}
