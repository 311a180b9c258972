package mqtt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/kilianp07/berthplan/core/model"
	coremqtt "github.com/kilianp07/berthplan/core/mqtt"
	"github.com/kilianp07/berthplan/core/planstore"
	"github.com/kilianp07/berthplan/core/report"
	"github.com/kilianp07/berthplan/infra/logger"
)

// Client mirrors the core mqtt.Client interface.
type Client = coremqtt.Client

// ScheduleMessage is the payload published for each berth assignment.
type ScheduleMessage struct {
	MessageID    string `json:"message_id"`
	RunID        string `json:"run_id"`
	VesselID     string `json:"vessel_id"`
	VesselName   string `json:"vessel_name"`
	BerthID      string `json:"berth_id"`
	BerthName    string `json:"berth_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	HandlingDays int    `json:"handling_days"`
	WaitingDays  int    `json:"waiting_days"`
	TotalCost    int64  `json:"total_cost"`
	PublishedAt  int64  `json:"published_at"`
}

// SummaryMessage is published to <prefix>/summary after the schedules.
type SummaryMessage struct {
	MessageID string `json:"message_id"`
	report.Summary
	PublishedAt int64 `json:"published_at"`
}

// Publisher mirrors the latest plan onto retained MQTT topics.
type Publisher struct {
	client Client
	prefix string
	retain bool
	log    logger.Logger
	now    func() time.Time

	mu   sync.Mutex
	live map[string]struct{}
}

// NewPublisher wraps client. cfg supplies the topic prefix and retain flag.
func NewPublisher(client Client, cfg Config) *Publisher {
	cfg.SetDefaults()
	return &Publisher{
		client: client,
		prefix: cfg.TopicPrefix,
		retain: *cfg.Retain,
		log:    logger.New("mqtt_publisher"),
		now:    time.Now,
		live:   make(map[string]struct{}),
	}
}

// ScheduleTopic returns <prefix>/<berth_id>/<vessel_id>.
func (p *Publisher) ScheduleTopic(s model.Schedule) string {
	return p.prefix + "/" + s.Berth.ID + "/" + s.Vessel.ID
}

// PublishSnapshot publishes every schedule of snap and its summary. Topics
// retained by an earlier snapshot that no longer carry a schedule are
// cleared with an empty retained payload.
func (p *Publisher) PublishSnapshot(snap planstore.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ts := p.now().UnixMilli()
	next := make(map[string]struct{}, len(snap.Plan.Schedules))
	var errs []error
	for _, s := range snap.Plan.Schedules {
		msg := ScheduleMessage{
			MessageID:    uuid.NewString(),
			RunID:        snap.Plan.RunID,
			VesselID:     s.Vessel.ID,
			VesselName:   s.Vessel.Name,
			BerthID:      s.Berth.ID,
			BerthName:    s.Berth.Name,
			StartDate:    s.StartDate.Format(model.DateLayout),
			EndDate:      s.EndDate().Format(model.DateLayout),
			HandlingDays: s.HandlingDays,
			WaitingDays:  s.WaitingDays,
			TotalCost:    s.TotalCost,
			PublishedAt:  ts,
		}
		topic := p.ScheduleTopic(s)
		next[topic] = struct{}{}
		if err := p.send(topic, msg); err != nil {
			errs = append(errs, err)
		}
	}
	if p.retain {
		for topic := range p.live {
			if _, ok := next[topic]; ok {
				continue
			}
			if err := p.client.Publish(topic, nil, true); err != nil {
				errs = append(errs, err)
			}
		}
	}
	p.live = next

	sum := SummaryMessage{
		MessageID:   uuid.NewString(),
		Summary:     report.Summarize(snap.Plan, snap.Berths),
		PublishedAt: ts,
	}
	if err := p.send(p.prefix+"/summary", sum); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		p.log.Infof("published plan %s: %d schedules", snap.Plan.RunID, len(snap.Plan.Schedules))
	}
	return errors.Join(errs...)
}

func (p *Publisher) send(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.client.Publish(topic, payload, p.retain)
}

// Run publishes every snapshot the store emits until ctx is done. The
// current snapshot, if any, is published first.
func (p *Publisher) Run(ctx context.Context, store planstore.Store) {
	ch := store.Subscribe()
	defer store.Unsubscribe(ch)
	if snap, ok := store.Latest(); ok {
		if err := p.PublishSnapshot(snap); err != nil {
			p.log.Errorf("publish snapshot: %v", err)
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if err := p.PublishSnapshot(snap); err != nil {
				p.log.Errorf("publish snapshot: %v", err)
			}
		}
	}
}
