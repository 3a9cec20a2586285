package infra

import (
	"testing"
)

func TestMetrics_RecordSubmission(t *testing.T) {
	m := &Metrics{}

	m.RecordSubmission(1000)
	m.RecordSubmission(2000)
	m.RecordSubmission(3000)

	snap := m.Snapshot()

	if snap.OrdersSubmitted != 3 {
		t.Errorf("Expected 3 submissions, got %d", snap.OrdersSubmitted)
	}

	// Average latency: (1000 + 2000 + 3000) / 3 = 2000
	if snap.AvgLatencyNs != 2000 {
		t.Errorf("Expected avg latency 2000, got %d", snap.AvgLatencyNs)
	}
}

func TestMetrics_FeedGauge(t *testing.T) {
	m := &Metrics{}

	snap := m.Snapshot()
	if snap.FeedConnected {
		t.Error("Expected feed down initially")
	}

	m.SetFeedConnected(true)
	snap = m.Snapshot()
	if !snap.FeedConnected {
		t.Error("Expected feed connected")
	}

	m.SetFeedConnected(false)
	snap = m.Snapshot()
	if snap.FeedConnected {
		t.Error("Expected feed down")
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordFeedUpdate()
	m.RecordSubmission(1000)
	m.RecordRejection()
	m.RecordError()
	m.SetFeedConnected(true)

	m.Reset()
	snap := m.Snapshot()

	if snap.FeedUpdates != 0 {
		t.Error("Expected 0 feed updates after reset")
	}
	if snap.OrdersSubmitted != 0 || snap.OrdersRejected != 0 {
		t.Error("Expected 0 orders after reset")
	}
	if snap.ErrorsTotal != 0 {
		t.Error("Expected 0 errors after reset")
	}
	if snap.FeedConnected {
		t.Error("Expected feed down after reset")
	}
}
