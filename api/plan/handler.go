// Package plan exposes the latest berth plan over HTTP and WebSocket.
package plan

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/kilianp07/berthplan/core/metrics"
	"github.com/kilianp07/berthplan/core/model"
	"github.com/kilianp07/berthplan/core/monitoring"
	"github.com/kilianp07/berthplan/core/planstore"
	"github.com/kilianp07/berthplan/core/report"
	"github.com/kilianp07/berthplan/core/scheduler"
	"github.com/kilianp07/berthplan/infra/logger"
	"github.com/kilianp07/berthplan/internal/fixtures"
	"github.com/kilianp07/berthplan/pkg/export"
)

// Planner re-runs the optimisation and stores the resulting snapshot.
type Planner interface {
	Replan(ctx context.Context, berths []model.Berth, vessels []model.Vessel) (scheduler.Plan, error)
}

// Handler serves the dashboard API from a snapshot store.
type Handler struct {
	store   planstore.Store
	planner Planner
	log     logger.Logger
}

func NewHandler(store planstore.Store, planner Planner) *Handler {
	return &Handler{store: store, planner: planner, log: logger.New("api_plan")}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/berths", h.get(h.berths))
	mux.HandleFunc("/api/vessels", h.get(h.vessels))
	mux.HandleFunc("/api/schedules", h.get(h.schedules))
	mux.HandleFunc("/api/summary", h.get(h.summary))
	mux.HandleFunc("/api/timeline", h.get(h.timeline))
	mux.HandleFunc("/api/optimize", h.optimize)
	mux.HandleFunc("/api/ws", h.ws)
}

func (h *Handler) get(fn func(http.ResponseWriter, *http.Request, planstore.Snapshot)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		snap, ok := h.store.Latest()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, errors.New("no plan computed yet"))
			return
		}
		fn(w, r, snap)
	}
}

func (h *Handler) berths(w http.ResponseWriter, _ *http.Request, snap planstore.Snapshot) {
	writeJSON(w, http.StatusOK, snap.Berths)
}

type vesselView struct {
	Vessel      model.Vessel `json:"vessel"`
	CargoLabels string       `json:"cargo_labels"`
}

func (h *Handler) vessels(w http.ResponseWriter, _ *http.Request, snap planstore.Snapshot) {
	out := make([]vesselView, len(snap.Vessels))
	for i, v := range snap.Vessels {
		out[i] = vesselView{Vessel: v, CargoLabels: export.CargoLabels(v)}
	}
	writeJSON(w, http.StatusOK, out)
}

// schedules accepts an optional berth_id filter.
func (h *Handler) schedules(w http.ResponseWriter, r *http.Request, snap planstore.Snapshot) {
	berthID := r.URL.Query().Get("berth_id")
	out := make([]model.Schedule, 0, len(snap.Plan.Schedules))
	for _, s := range snap.Plan.Schedules {
		if berthID == "" || s.Berth.ID == berthID {
			out = append(out, s)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request, snap planstore.Snapshot) {
	writeJSON(w, http.StatusOK, report.Summarize(snap.Plan, snap.Berths))
}

func (h *Handler) timeline(w http.ResponseWriter, _ *http.Request, snap planstore.Snapshot) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.WriteTimelineHTML(w, snap.Berths, snap.Plan.Schedules); err != nil {
		h.log.Errorf("render timeline: %v", err)
	}
}

// optimize re-runs the scheduler. The body may carry a full dataset; an
// empty body reuses the current inputs and ?dataset=demo resets them to the
// demo terminal data.
func (h *Handler) optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	berths, vessels, err := h.inputs(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	ctx := metrics.WithSource(r.Context(), "api")
	p, err := h.planner.Replan(ctx, berths, vessels)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			monitoring.CaptureComponentError("api_plan", err)
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Summarize(p, berths))
}

func (h *Handler) inputs(r *http.Request) ([]model.Berth, []model.Vessel, error) {
	if r.URL.Query().Get("dataset") == "demo" {
		return fixtures.DemoBerths(), fixtures.DemoVessels(fixtures.DemoBaseDate), nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		return nil, nil, err
	}
	if len(body) > 0 {
		var ds fixtures.Dataset
		if err := json.Unmarshal(body, &ds); err != nil {
			return nil, nil, &model.ValidationError{Field: "body", Reason: err.Error()}
		}
		return ds.ToModel()
	}
	snap, ok := h.store.Latest()
	if !ok {
		return nil, nil, &model.ValidationError{Field: "body", Reason: "no dataset given and none loaded"}
	}
	return snap.Berths, snap.Vessels, nil
}

func statusFor(err error) int {
	var verr *model.ValidationError
	var cerr *model.ConfigurationError
	if errors.As(err, &verr) || errors.As(err, &cerr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.New("api_plan").Errorf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
