package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/berthplan/core/metrics"
	"github.com/kilianp07/berthplan/core/model"
	"github.com/kilianp07/berthplan/infra/logger"
)

// InfluxSink writes one point per schedule and one per run to InfluxDB.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	timeout  time.Duration
	log      logger.Logger
}

// InfluxConfig locates the bucket receiving plan points. A zero Timeout
// means five seconds.
type InfluxConfig struct {
	URL     string        `json:"url"`
	Token   string        `json:"token"`
	Org     string        `json:"org"`
	Bucket  string        `json:"bucket"`
	Timeout time.Duration `json:"timeout"`
}

func (c InfluxConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.Timeout
}

// NewInfluxSink creates a sink writing to cfg.Bucket. A URL ending in the
// write endpoint path is accepted.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: cfg.timeout()}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		timeout:  cfg.timeout(),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback returns a NopSink when the instance fails its
// health check, so planning keeps working without InfluxDB.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.PlanRecorder {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), sink.timeout)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlan writes one berth_schedule point per schedule and a plan_run summary.
func (s *InfluxSink) RecordPlan(ev coremetrics.PlanEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*s.timeout)
	defer cancel()
	points := make([]*write.Point, 0, len(ev.Schedules)+1)
	for _, sc := range ev.Schedules {
		points = append(points, schedulePoint(ev.RunID, sc))
	}
	points = append(points, write.NewPointWithMeasurement("plan_run").
		AddTag("run_id", ev.RunID).
		AddTag("source", ev.Source).
		AddField("assigned", len(ev.Schedules)).
		AddField("unassigned", len(ev.Unassigned)).
		AddField("total_cost", ev.TotalCost()).
		AddField("duration_ms", ev.Duration.Milliseconds()).
		SetTime(ev.Time))
	return s.writeAPI.WritePoint(ctx, points...)
}

func schedulePoint(runID string, sc model.Schedule) *write.Point {
	return write.NewPointWithMeasurement("berth_schedule").
		AddTag("run_id", runID).
		AddTag("berth_id", sc.Berth.ID).
		AddTag("port", sc.Berth.PortName).
		AddTag("vessel_id", sc.Vessel.ID).
		AddField("quantity_t", sc.Vessel.TotalQuantity()).
		AddField("handling_days", sc.HandlingDays).
		AddField("waiting_days", sc.WaitingDays).
		AddField("berth_cost", sc.BerthCost).
		AddField("waiting_cost", sc.WaitingCost).
		AddField("total_cost", sc.TotalCost).
		SetTime(sc.StartDate)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
