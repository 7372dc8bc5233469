package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drive_thru_order_app/internal/core/ports/repositories"
)

// ArchivePublisher buffers committed entries and writes them to a
// HistoryArchiver from a single goroutine, preserving append order.
// When the buffer is full the entry is dropped and logged.
type ArchivePublisher struct {
	archiver  portsrepo.HistoryArchiver
	sessionID string
	logger    *slog.Logger
	queue     chan domain.HistoryEntry
	done      chan struct{}
	closeOnce sync.Once
}

// NewArchivePublisher creates a publisher with room for bufferSize pending entries.
func NewArchivePublisher(archiver portsrepo.HistoryArchiver, sessionID string, bufferSize int, logger *slog.Logger) *ArchivePublisher {
	if bufferSize < 1 {
		bufferSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchivePublisher{
		archiver:  archiver,
		sessionID: sessionID,
		logger:    logger.With(slog.String("component", "archive"), slog.String("session_id", sessionID)),
		queue:     make(chan domain.HistoryEntry, bufferSize),
		done:      make(chan struct{}),
	}
}

// Ensure ArchivePublisher implements EntryPublisher
var _ EntryPublisher = (*ArchivePublisher)(nil)

// Publish enqueues entry without blocking.
func (p *ArchivePublisher) Publish(entry domain.HistoryEntry) {
	select {
	case p.queue <- entry.Clone():
	default:
		p.logger.Warn("Archive buffer full, dropping entry", slog.Int("entry_id", entry.ID))
	}
}

// Run drains the queue until ctx is cancelled or Close is called, then
// flushes whatever is still buffered.
func (p *ArchivePublisher) Run(ctx context.Context) {
	for {
		select {
		case entry := <-p.queue:
			p.save(ctx, entry)
		case <-ctx.Done():
			p.flush(context.WithoutCancel(ctx))
			return
		case <-p.done:
			p.flush(ctx)
			return
		}
	}
}

// Close stops Run after the buffered entries are written.
func (p *ArchivePublisher) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

func (p *ArchivePublisher) flush(ctx context.Context) {
	for {
		select {
		case entry := <-p.queue:
			p.save(ctx, entry)
		default:
			return
		}
	}
}

func (p *ArchivePublisher) save(ctx context.Context, entry domain.HistoryEntry) {
	if err := p.archiver.SaveEntry(ctx, p.sessionID, entry); err != nil {
		p.logger.Error("Failed to archive history entry",
			slog.Int("entry_id", entry.ID),
			slog.String("error", err.Error()))
		return
	}
	p.logger.Debug("Archived history entry", slog.Int("entry_id", entry.ID))
}
