package repository

import (
	"errors"

	"debt-planner/domain"
)

var ErrDebtNotFound = errors.New("debt not found")

type DebtRepository interface {
	Save(debt domain.Debt) error
	FindByID(id string) (domain.Debt, error)
	FindAll() ([]domain.Debt, error)
	Delete(id string) error
}
