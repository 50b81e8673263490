package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// AuditDispatcher forwards activity entries to the downstream sink on a fixed
// set of workers, sharded by actor id so one actor's entries arrive in order.
// Enqueueing never blocks: when a worker's buffer is full the entry is
// dropped and counted, honoring the fire-and-forget audit contract.
type AuditDispatcher struct {
	workers []chan domain.ActivityEntry
	sink    ports.AuditSink
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, sink ports.AuditSink, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.ActivityEntry, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Append implements ports.AuditSink. It hands the entry to the worker owning
// the actor's shard and returns immediately; it never reports an error.
func (d *AuditDispatcher) Append(_ context.Context, entry domain.ActivityEntry) error {
	select {
	case d.workers[d.shardIndex(entry.ActorID)] <- entry:
	default:
		d.log.Warn().Str("actor_id", entry.ActorID).Str("action", entry.Action).
			Msg("audit buffer full, entry dropped")
	}
	return nil
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Append(ctx, entry); err != nil {
				d.log.Error().Err(err).
					Str("actor_id", entry.ActorID).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit forwarding failed")
			}
		}
	}
}
