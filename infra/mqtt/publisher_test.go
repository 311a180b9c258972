package mqtt

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/berthplan/core/planstore"
	"github.com/kilianp07/berthplan/core/scheduler"
	"github.com/kilianp07/berthplan/internal/fixtures"
)

type message struct {
	payload  []byte
	retained bool
}

type fakeClient struct {
	mu   sync.Mutex
	msgs map[string][]message
}

func newFakeClient() *fakeClient { return &fakeClient{msgs: make(map[string][]message)} }

func (f *fakeClient) Publish(topic string, payload []byte, retained bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs[topic] = append(f.msgs[topic], message{payload, retained})
	return nil
}

func (f *fakeClient) Disconnect() {}

func (f *fakeClient) last(topic string) (message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.msgs[topic]
	if len(m) == 0 {
		return message{}, false
	}
	return m[len(m)-1], true
}

func demoSnapshot(t *testing.T) planstore.Snapshot {
	t.Helper()
	cfg := scheduler.DefaultConfig()
	cfg.PlanDate = "2025-07-01"
	s, err := scheduler.New(cfg)
	require.NoError(t, err)
	berths := fixtures.DemoBerths()
	vessels := fixtures.DemoVessels(fixtures.DemoBaseDate)
	p, err := s.Plan(berths, vessels)
	require.NoError(t, err)
	return planstore.Snapshot{Berths: berths, Vessels: vessels, Plan: p}
}

func TestPublishSnapshot(t *testing.T) {
	fc := newFakeClient()
	pub := NewPublisher(fc, Config{TopicPrefix: "port"})
	snap := demoSnapshot(t)

	require.NoError(t, pub.PublishSnapshot(snap))

	m, ok := fc.last("port/KOBE_B1/MV_001")
	require.True(t, ok)
	assert.True(t, m.retained)
	var sm ScheduleMessage
	require.NoError(t, json.Unmarshal(m.payload, &sm))
	assert.Equal(t, snap.Plan.RunID, sm.RunID)
	assert.Equal(t, "2025-07-01", sm.StartDate)
	assert.Equal(t, "2025-07-19", sm.EndDate)
	assert.Equal(t, int64(8_640_000), sm.TotalCost)
	assert.NotEmpty(t, sm.MessageID)

	sum, ok := fc.last("port/summary")
	require.True(t, ok)
	var decoded SummaryMessage
	require.NoError(t, json.Unmarshal(sum.payload, &decoded))
	assert.Equal(t, 5, decoded.Assigned)
	assert.Equal(t, int64(51_510_000), decoded.TotalCost)
}

func TestPublishSnapshotClearsStaleTopics(t *testing.T) {
	fc := newFakeClient()
	pub := NewPublisher(fc, Config{TopicPrefix: "port"})
	snap := demoSnapshot(t)
	require.NoError(t, pub.PublishSnapshot(snap))

	snap.Plan.Schedules = snap.Plan.Schedules[:1]
	require.NoError(t, pub.PublishSnapshot(snap))

	m, ok := fc.last("port/CHIBA_B2/MV_002")
	require.True(t, ok)
	assert.Empty(t, m.payload)
	assert.True(t, m.retained)

	kept, _ := fc.last("port/KOBE_B1/MV_001")
	assert.NotEmpty(t, kept.payload)
}

func TestRunPublishesStoreUpdates(t *testing.T) {
	fc := newFakeClient()
	pub := NewPublisher(fc, Config{})
	store := planstore.NewMemoryStore()
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pub.Run(ctx, store)
		close(done)
	}()

	snap := demoSnapshot(t)
	assert.Eventually(t, func() bool {
		store.Set(snap)
		_, ok := fc.last("berthplan/schedules/summary")
		return ok
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}
