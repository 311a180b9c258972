package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/kilianp07/berthplan/api/plan"
	"github.com/kilianp07/berthplan/config"
	coremetrics "github.com/kilianp07/berthplan/core/metrics"
	"github.com/kilianp07/berthplan/core/model"
	"github.com/kilianp07/berthplan/core/monitoring"
	"github.com/kilianp07/berthplan/core/planstore"
	"github.com/kilianp07/berthplan/core/scheduler"
	"github.com/kilianp07/berthplan/infra/logger"
	"github.com/kilianp07/berthplan/infra/metrics"
	"github.com/kilianp07/berthplan/infra/mqtt"
)

// Service wires the scheduler to the snapshot store, metrics sinks, MQTT
// publication and the dashboard API.
type Service struct {
	Scheduler *scheduler.Scheduler
	Store     *planstore.MemoryStore

	cfg       *config.Config
	recorder  coremetrics.PlanRecorder
	mqttCli   mqtt.Client
	publisher *mqtt.Publisher
	log       logger.Logger

	// replans are serialized so snapshots land in run order.
	mu sync.Mutex
}

// Option customizes a Service.
type Option func(*Service)

// WithRecorder replaces the recorder built from cfg.Metrics.
func WithRecorder(r coremetrics.PlanRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithMQTTClient publishes through c instead of dialing cfg.MQTT.Broker.
func WithMQTTClient(c mqtt.Client) Option {
	return func(s *Service) { s.mqttCli = c }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{cfg: cfg, Store: planstore.NewMemoryStore(), log: logger.New("service")}
	for _, o := range opts {
		o(s)
	}

	sched, err := scheduler.New(cfg.Scheduler, scheduler.WithLogger(logger.New("scheduler")))
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	s.Scheduler = sched

	if s.recorder == nil {
		rec, err := coremetrics.NewPlanRecorder(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sinks: %w", err)
		}
		s.recorder = rec
	}

	if s.mqttCli == nil && cfg.MQTT.Enabled() {
		cli, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		s.mqttCli = cli
	}
	if s.mqttCli != nil {
		s.publisher = mqtt.NewPublisher(s.mqttCli, cfg.MQTT)
	}
	return s, nil
}

// Replan computes a plan for the given inputs, records it and makes it the
// latest snapshot. The run source is read from ctx (see metrics.WithSource).
func (s *Service) Replan(ctx context.Context, berths []model.Berth, vessels []model.Vessel) (scheduler.Plan, error) {
	if err := ctx.Err(); err != nil {
		return scheduler.Plan{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	p, err := s.Scheduler.Plan(berths, vessels)
	if err != nil {
		return scheduler.Plan{}, err
	}
	ev := coremetrics.PlanEvent{
		RunID:      p.RunID,
		Source:     coremetrics.SourceFromContext(ctx),
		Time:       p.GeneratedAt,
		Duration:   time.Since(start),
		Schedules:  p.Schedules,
		Unassigned: p.Unassigned,
	}
	if err := s.recorder.RecordPlan(ev); err != nil {
		s.log.Errorf("record plan: %v", err)
		monitoring.CaptureRunError("metrics", p.RunID, err)
	}
	if r, ok := s.recorder.(coremetrics.InputSizeRecorder); ok {
		if err := r.RecordInputSize(len(berths), len(vessels)); err != nil {
			s.log.Errorf("record input size: %v", err)
		}
	}
	s.Store.Set(planstore.Snapshot{Berths: berths, Vessels: vessels, Plan: p})
	return p, nil
}

// Handler returns the dashboard API mux.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	plan.NewHandler(s.Store, s).Register(mux)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Run plans the configured startup dataset, then serves HTTP, Prometheus
// and MQTT publication until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	berths, vessels, err := LoadDataset(s.cfg.Fixtures)
	if err != nil {
		return err
	}
	if _, err := s.Replan(coremetrics.WithSource(ctx, "startup"), berths, vessels); err != nil {
		return fmt.Errorf("initial plan: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	if s.publisher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer monitoring.Recover()
			s.publisher.Run(ctx, s.Store)
		}()
	}
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer monitoring.Recover()
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout(),
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("dashboard listening on %s", s.cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err = <-errCh:
	}
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout())
	defer stop()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		s.log.Errorf("http shutdown: %v", serr)
	}
	wg.Wait()
	return err
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.Store.Close()
	if s.mqttCli != nil {
		s.mqttCli.Disconnect()
	}
	return coremetrics.Close(s.recorder)
}
