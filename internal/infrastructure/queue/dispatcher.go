package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/protolab/portal-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes chat events to a fixed set of workers using consistent
// hashing on the conversation id, guaranteeing per-conversation ordering of
// unread accounting.
type Dispatcher struct {
	workers []chan ports.ChatEvent
	sink    ports.ChatEventSink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.ChatEventSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ChatEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ChatEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its conversation.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.ChatEvent) {
	d.workers[d.shardIndex(event.ConversationID)] <- event
}

// shardIndex maps a conversation id deterministically to a worker index.
func (d *Dispatcher) shardIndex(conversationID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(conversationID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ChatEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("conversation_id", event.ConversationID).
					Str("message_id", event.MessageID).
					Int("worker_id", id).
					Msg("chat event processing failed")
			}
		}
	}
}
