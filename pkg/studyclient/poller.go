package studyclient

import (
	"context"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/google/uuid"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultPollMaxWait  = 5 * time.Minute
)

type documentLister interface {
	Documents(ctx context.Context, sessionId uuid.UUID) (*dto.ListDocumentsResponse, error)
}

// Poller waits for every document in a session to reach a terminal
// extraction status. It polls at a fixed interval and gives up after a
// fixed wall-clock budget so a stuck backend job cannot pin the client
// forever.
type Poller struct {
	lister   documentLister
	interval time.Duration
	maxWait  time.Duration
}

func NewPoller(lister documentLister) *Poller {
	return &Poller{
		lister:   lister,
		interval: defaultPollInterval,
		maxWait:  defaultPollMaxWait,
	}
}

// PollResult is the final snapshot the poller observed.
type PollResult struct {
	Documents   []dto.DocumentResponse
	FailedCount int
	TimedOut    bool
}

// Wait blocks until all documents are terminal, the wall-clock budget
// runs out, or the context is cancelled. List errors are swallowed and
// retried on the next tick.
func (p *Poller) Wait(ctx context.Context, sessionId uuid.UUID) (*PollResult, error) {
	deadline := time.NewTimer(p.maxWait)
	defer deadline.Stop()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last *dto.ListDocumentsResponse
	for {
		list, err := p.lister.Documents(ctx, sessionId)
		if err == nil {
			last = list
			if allTerminal(list.Documents) {
				return &PollResult{
					Documents:   list.Documents,
					FailedCount: list.FailedCount,
				}, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			result := &PollResult{TimedOut: true}
			if last != nil {
				result.Documents = last.Documents
				result.FailedCount = last.FailedCount
			}
			return result, nil
		case <-ticker.C:
		}
	}
}

func allTerminal(documents []dto.DocumentResponse) bool {
	for _, doc := range documents {
		if doc.ExtractionStatus != "completed" && doc.ExtractionStatus != "failed" {
			return false
		}
	}
	return true
}
