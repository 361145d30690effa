package studyclient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/google/uuid"
)

// scriptedLister replays a fixed sequence of snapshots, repeating the
// last one forever, and counts how many times it was asked.
type scriptedLister struct {
	mu        sync.Mutex
	snapshots []*dto.ListDocumentsResponse
	errs      []error
	calls     int
}

func (l *scriptedLister) Documents(ctx context.Context, sessionId uuid.UUID) (*dto.ListDocumentsResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.calls
	l.calls++
	if i < len(l.errs) && l.errs[i] != nil {
		return nil, l.errs[i]
	}
	if i >= len(l.snapshots) {
		i = len(l.snapshots) - 1
	}
	return l.snapshots[i], nil
}

func (l *scriptedLister) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func snapshot(statuses ...string) *dto.ListDocumentsResponse {
	list := &dto.ListDocumentsResponse{}
	for _, status := range statuses {
		list.Documents = append(list.Documents, dto.DocumentResponse{
			Id:               uuid.New(),
			ExtractionStatus: status,
		})
		if status == "failed" {
			list.FailedCount++
		}
	}
	return list
}

func TestPollerStopsOnTerminalSnapshot(t *testing.T) {
	lister := &scriptedLister{
		snapshots: []*dto.ListDocumentsResponse{
			snapshot("pending", "processing"),
			snapshot("completed", "processing"),
			snapshot("completed", "failed"),
		},
	}
	poller := &Poller{lister: lister, interval: time.Millisecond, maxWait: time.Second}

	result, err := poller.Wait(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result.TimedOut {
		t.Error("TimedOut = true, want false")
	}
	if result.FailedCount != 1 {
		t.Errorf("FailedCount = %d, want 1", result.FailedCount)
	}

	calls := lister.callCount()
	time.Sleep(10 * time.Millisecond)
	if got := lister.callCount(); got != calls {
		t.Errorf("poller kept polling after terminal snapshot: %d -> %d calls", calls, got)
	}
}

func TestPollerSwallowsFetchErrors(t *testing.T) {
	lister := &scriptedLister{
		snapshots: []*dto.ListDocumentsResponse{
			snapshot("processing"),
			snapshot("processing"),
			snapshot("completed"),
		},
		errs: []error{nil, errors.New("network down")},
	}
	poller := &Poller{lister: lister, interval: time.Millisecond, maxWait: time.Second}

	result, err := poller.Wait(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result.TimedOut || result.FailedCount != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestPollerTimesOutWhenNeverTerminal(t *testing.T) {
	lister := &scriptedLister{
		snapshots: []*dto.ListDocumentsResponse{snapshot("processing")},
	}
	poller := &Poller{lister: lister, interval: time.Millisecond, maxWait: 20 * time.Millisecond}

	start := time.Now()
	result, err := poller.Wait(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if !result.TimedOut {
		t.Error("TimedOut = false, want true")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("poller ran %v past its budget", elapsed)
	}
	if len(result.Documents) != 1 {
		t.Errorf("expected the last snapshot in the result, got %d documents", len(result.Documents))
	}
}

func TestPollerHonorsContextCancellation(t *testing.T) {
	lister := &scriptedLister{
		snapshots: []*dto.ListDocumentsResponse{snapshot("processing")},
	}
	poller := &Poller{lister: lister, interval: time.Millisecond, maxWait: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := poller.Wait(ctx, uuid.New())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
