package repository

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"debt-planner/domain"
)

const debtSchema = `
CREATE TABLE IF NOT EXISTS debts (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL DEFAULT '',
	total_amount     REAL NOT NULL,
	current_amount   REAL NOT NULL,
	interest_rate    REAL NOT NULL,
	date_started     TEXT NOT NULL,
	monthly_payment  REAL NOT NULL DEFAULT 0,
	duration         INTEGER NOT NULL DEFAULT 0,
	include_in_total INTEGER
);`

// DebtRepositorySQLite persists debts in a local SQLite file, the
// planner's offline store.
type DebtRepositorySQLite struct {
	db *sql.DB
}

// NewDebtRepositorySQLite opens (creating if needed) the database at path.
func NewDebtRepositorySQLite(path string) (*DebtRepositorySQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(debtSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &DebtRepositorySQLite{db: db}, nil
}

func (r *DebtRepositorySQLite) Close() error {
	return r.db.Close()
}

// Save upserts a debt record.
func (r *DebtRepositorySQLite) Save(debt domain.Debt) error {
	var include sql.NullInt64
	if debt.IncludeInTotal != nil {
		include.Valid = true
		if *debt.IncludeInTotal {
			include.Int64 = 1
		}
	}
	_, err := r.db.Exec(`
		INSERT INTO debts (id, name, total_amount, current_amount, interest_rate,
			date_started, monthly_payment, duration, include_in_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			total_amount = excluded.total_amount,
			current_amount = excluded.current_amount,
			interest_rate = excluded.interest_rate,
			date_started = excluded.date_started,
			monthly_payment = excluded.monthly_payment,
			duration = excluded.duration,
			include_in_total = excluded.include_in_total`,
		debt.ID, debt.Name, debt.TotalAmount, debt.CurrentAmount, debt.InterestRate,
		debt.DateStarted.Format(time.RFC3339), debt.MonthlyPayment, debt.Duration, include,
	)
	if err != nil {
		return fmt.Errorf("failed to save debt: %w", err)
	}
	return nil
}

func (r *DebtRepositorySQLite) FindByID(id string) (domain.Debt, error) {
	row := r.db.QueryRow(`
		SELECT id, name, total_amount, current_amount, interest_rate,
			date_started, monthly_payment, duration, include_in_total
		FROM debts WHERE id = ?`, id)
	debt, err := scanDebt(row)
	if err == sql.ErrNoRows {
		return domain.Debt{}, ErrDebtNotFound
	}
	return debt, err
}

func (r *DebtRepositorySQLite) FindAll() ([]domain.Debt, error) {
	rows, err := r.db.Query(`
		SELECT id, name, total_amount, current_amount, interest_rate,
			date_started, monthly_payment, duration, include_in_total
		FROM debts ORDER BY date_started, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []domain.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

func (r *DebtRepositorySQLite) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM debts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDebtNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDebt(row rowScanner) (domain.Debt, error) {
	var debt domain.Debt
	var started string
	var include sql.NullInt64
	err := row.Scan(&debt.ID, &debt.Name, &debt.TotalAmount, &debt.CurrentAmount,
		&debt.InterestRate, &started, &debt.MonthlyPayment, &debt.Duration, &include)
	if err != nil {
		return domain.Debt{}, err
	}
	debt.DateStarted, err = time.Parse(time.RFC3339, started)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("invalid date_started for debt %s: %w", debt.ID, err)
	}
	if include.Valid {
		v := include.Int64 != 0
		debt.IncludeInTotal = &v
	}
	return debt, nil
}
