package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"debt-planner/domain"
	"debt-planner/repository"
)

type DebtHandler struct {
	repo repository.DebtRepository
	log  *logrus.Logger
}

func NewDebtHandler(repo repository.DebtRepository, log *logrus.Logger) *DebtHandler {
	return &DebtHandler{repo: repo, log: log}
}

func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var debt domain.Debt
	if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateDebt(&debt); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if debt.ID == "" {
		debt.ID = uuid.NewString()
	}

	if err := h.repo.Save(debt); err != nil {
		h.log.Errorf("failed to save debt: %v", err)
		http.Error(w, "failed to save debt", http.StatusInternalServerError)
		return
	}

	h.log.Infof("Debt created: %s (%s)", debt.ID, debt.Name)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(debt)
}

func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	debts, err := h.repo.FindAll()
	if err != nil {
		h.log.Errorf("failed to list debts: %v", err)
		http.Error(w, "failed to list debts", http.StatusInternalServerError)
		return
	}
	if debts == nil {
		debts = []domain.Debt{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(debts)
}

func (h *DebtHandler) Get(w http.ResponseWriter, r *http.Request) {
	debt, err := h.repo.FindByID(mux.Vars(r)["id"])
	if err == repository.ErrDebtNotFound {
		http.Error(w, "debt not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Errorf("failed to load debt: %v", err)
		http.Error(w, "failed to load debt", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(debt)
}

func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := h.repo.FindByID(id); err == repository.ErrDebtNotFound {
		http.Error(w, "debt not found", http.StatusNotFound)
		return
	} else if err != nil {
		h.log.Errorf("failed to load debt: %v", err)
		http.Error(w, "failed to load debt", http.StatusInternalServerError)
		return
	}

	var debt domain.Debt
	if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	debt.ID = id
	if err := validateDebt(&debt); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.Save(debt); err != nil {
		h.log.Errorf("failed to update debt: %v", err)
		http.Error(w, "failed to update debt", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(debt)
}

func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.Delete(mux.Vars(r)["id"])
	if err == repository.ErrDebtNotFound {
		http.Error(w, "debt not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Errorf("failed to delete debt: %v", err)
		http.Error(w, "failed to delete debt", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateDebt(debt *domain.Debt) error {
	if debt.TotalAmount < 0 {
		return errors.New("monto total inválido")
	}
	if debt.MonthlyPayment < 0 {
		return errors.New("pago mensual inválido")
	}
	if debt.InterestRate < 0 {
		return errors.New("tasa de interés inválida")
	}
	if debt.DateStarted.IsZero() {
		return errors.New("fecha de inicio requerida")
	}
	// an omitted balance means "derive it from the payment history"
	if debt.CurrentAmount == 0 {
		debt.CurrentAmount = debt.TotalAmount
	}
	return nil
}
