package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestIntervalDriverFires(t *testing.T) {
	t.Parallel()

	d := NewIntervalDriver(20 * time.Millisecond)
	fired := make(chan time.Time, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx, func(ts time.Time) { fired <- ts }); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("driver never fired")
	}

	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	// Stopping an already-stopped driver is a no-op.
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("repeat Stop error: %v", err)
	}
}

func TestIntervalDriverRejectsBadInterval(t *testing.T) {
	t.Parallel()

	d := NewIntervalDriver(0)
	if err := d.Start(context.Background(), func(time.Time) {}); err == nil {
		t.Fatal("expected error for non-positive interval")
	}
}

func TestIntervalDriverNilJob(t *testing.T) {
	t.Parallel()

	d := NewIntervalDriver(time.Second)
	if err := d.Start(context.Background(), nil); err != nil {
		t.Fatalf("nil job must be a no-op, got %v", err)
	}
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
}
