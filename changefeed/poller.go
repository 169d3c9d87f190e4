package changefeed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/transactioncloud/transactioncloud-go/model"
)

// API is the slice of the SDK client the poller needs.
//
//go:generate mockgen -destination=mocks/mock_changefeed.go -source=poller.go API,Storage
type API interface {
	FetchChangedTransactions(ctx context.Context) ([]*model.ChangedTransaction, error)
	MarkTransactionAsProcessed(ctx context.Context, transactionID string) (bool, error)
}

// Storage persists fetched changes before they are acknowledged.
type Storage interface {
	UpsertChangedTransaction(ctx context.Context, tx *model.ChangedTransaction) error
}

// RunReport summarizes one polling pass.
type RunReport struct {
	RunID   uuid.UUID
	Fetched int
	Stored  int
	Acked   int
}

// Poller drains the change feed: fetch, persist, acknowledge. A
// transaction is only acknowledged after its row is stored, so a
// failing store keeps it in the feed for the next pass.
type Poller struct {
	api     API
	storage Storage
	logger  *slog.Logger
}

func NewPoller(api API, storage Storage, logger *slog.Logger) *Poller {
	return &Poller{
		api:     api,
		storage: storage,
		logger:  logger,
	}
}

// RunOnce performs one polling pass. Per-transaction store or ack
// failures are logged and skipped; only a failed fetch fails the pass.
func (p *Poller) RunOnce(ctx context.Context) (*RunReport, error) {
	report := &RunReport{RunID: uuid.New()}

	changed, err := p.api.FetchChangedTransactions(ctx)
	if err != nil {
		p.logger.Error("Failed to fetch changed transactions", "run_id", report.RunID, "error", err)
		return nil, err
	}
	report.Fetched = len(changed)

	for _, tx := range changed {
		if err := p.storage.UpsertChangedTransaction(ctx, tx); err != nil {
			p.logger.Error("Skipping acknowledgement after failed store",
				"run_id", report.RunID,
				"transaction_id", tx.ID(),
				"error", err)
			continue
		}
		report.Stored++

		acked, err := p.api.MarkTransactionAsProcessed(ctx, tx.ID())
		if err != nil {
			p.logger.Error("Failed to mark transaction as processed",
				"run_id", report.RunID,
				"transaction_id", tx.ID(),
				"error", err)
			continue
		}
		if !acked {
			p.logger.Warn("Server refused processed acknowledgement",
				"run_id", report.RunID,
				"transaction_id", tx.ID())
			continue
		}
		report.Acked++
	}

	p.logger.Info("Change feed pass completed",
		"run_id", report.RunID,
		"fetched", report.Fetched,
		"stored", report.Stored,
		"acked", report.Acked)
	return report, nil
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.RunOnce(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
