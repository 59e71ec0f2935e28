package repository

import (
	"sort"
	"sync"

	"debt-planner/domain"
)

// DebtRepositoryMemory is an in-memory implementation of DebtRepository.
type DebtRepositoryMemory struct {
	mu    sync.RWMutex
	debts map[string]domain.Debt
}

// NewDebtRepositoryMemory creates a new in-memory debt repository.
func NewDebtRepositoryMemory() *DebtRepositoryMemory {
	return &DebtRepositoryMemory{
		debts: make(map[string]domain.Debt),
	}
}

// Save stores or replaces a debt record.
func (r *DebtRepositoryMemory) Save(debt domain.Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debts[debt.ID] = debt
	return nil
}

func (r *DebtRepositoryMemory) FindByID(id string) (domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	debt, ok := r.debts[id]
	if !ok {
		return domain.Debt{}, ErrDebtNotFound
	}
	return debt, nil
}

// FindAll returns every stored debt ordered by start date, oldest first.
func (r *DebtRepositoryMemory) FindAll() ([]domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	debts := make([]domain.Debt, 0, len(r.debts))
	for _, debt := range r.debts {
		debts = append(debts, debt)
	}
	sort.Slice(debts, func(i, j int) bool {
		if debts[i].DateStarted.Equal(debts[j].DateStarted) {
			return debts[i].ID < debts[j].ID
		}
		return debts[i].DateStarted.Before(debts[j].DateStarted)
	})
	return debts, nil
}

func (r *DebtRepositoryMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.debts[id]; !ok {
		return ErrDebtNotFound
	}
	delete(r.debts, id)
	return nil
}
