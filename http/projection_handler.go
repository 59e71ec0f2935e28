package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"debt-planner/domain"
	"debt-planner/repository"
	"debt-planner/service"
)

// ProjectionHandler exposes the projection engine: per-debt trajectories,
// balance reconstruction, portfolio aggregation and strategy simulation.
type ProjectionHandler struct {
	repo        repository.DebtRepository
	projections *service.ProjectionService
	strategies  *service.StrategyService
	log         *logrus.Logger
}

func NewProjectionHandler(
	repo repository.DebtRepository,
	projections *service.ProjectionService,
	strategies *service.StrategyService,
	log *logrus.Logger,
) *ProjectionHandler {
	return &ProjectionHandler{
		repo:        repo,
		projections: projections,
		strategies:  strategies,
		log:         log,
	}
}

// ProjectDebt returns one debt's forward trajectory. An empty array means
// no projection is possible (no payment set, or already paid off).
func (h *ProjectionHandler) ProjectDebt(w http.ResponseWriter, r *http.Request) {
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

	points := h.projections.ProjectDebt(debt, time.Now())
	writeProjection(w, points)
}

// Balance returns the reconstructed current balance of one debt.
func (h *ProjectionHandler) Balance(w http.ResponseWriter, r *http.Request) {
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

	status := h.projections.ReconstructBalance(debt, time.Now())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// Aggregate sums every included debt's independent projection.
func (h *ProjectionHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	debts, err := h.repo.FindAll()
	if err != nil {
		h.log.Errorf("failed to list debts: %v", err)
		http.Error(w, "failed to list debts", http.StatusInternalServerError)
		return
	}

	points := h.projections.AggregateProjections(debts, time.Now())
	writeProjection(w, points)
}

// Simulate runs a payoff-strategy simulation over the stored debts.
func (h *ProjectionHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Strategy       string  `json:"strategy"`
		MonthlyBudget  float64 `json:"monthlyBudget"`
		SmartThreshold float64 `json:"smartThreshold"`
		FromStart      bool    `json:"fromStart"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	strategy, err := domain.ParseStrategy(body.Strategy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	debts, err := h.repo.FindAll()
	if err != nil {
		h.log.Errorf("failed to list debts: %v", err)
		http.Error(w, "failed to list debts", http.StatusInternalServerError)
		return
	}

	points := h.strategies.Simulate(domain.SimulationInput{
		Debts:          debts,
		Strategy:       strategy,
		MonthlyBudget:  body.MonthlyBudget,
		SmartThreshold: body.SmartThreshold,
		FromStart:      body.FromStart,
	}, time.Now())
	writeProjection(w, points)
}

func writeProjection(w http.ResponseWriter, points []domain.ProjectionPoint) {
	if points == nil {
		points = []domain.ProjectionPoint{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(points)
}
