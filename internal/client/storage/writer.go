package storage

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type opKind int

const (
	opSet opKind = iota
	opRemove
)

type op struct {
	kind  opKind
	value string
}

type keyQueue struct {
	ops     []op
	running bool
}

// Writer applies Set/Remove operations to a Store asynchronously.
// Operations for the same key run in submission order; different keys
// may interleave. Failures are logged, never returned: the caller's
// in-memory state is the source of truth and a lost write only costs
// resume fidelity.
type Writer struct {
	store Store
	log   *zap.Logger

	mu     sync.Mutex
	queues map[string]*keyQueue
	wg     sync.WaitGroup
}

func NewWriter(store Store, log *zap.Logger) *Writer {
	return &Writer{
		store:  store,
		log:    log,
		queues: make(map[string]*keyQueue),
	}
}

// Set schedules a write for key and returns immediately.
func (w *Writer) Set(key, value string) {
	w.enqueue(key, op{kind: opSet, value: value})
}

// Remove schedules a deletion for key and returns immediately.
func (w *Writer) Remove(key string) {
	w.enqueue(key, op{kind: opRemove})
}

func (w *Writer) enqueue(key string, o op) {
	w.mu.Lock()
	defer w.mu.Unlock()

	q := w.queues[key]
	if q == nil {
		q = &keyQueue{}
		w.queues[key] = q
	}
	q.ops = append(q.ops, o)
	w.wg.Add(1)
	if !q.running {
		q.running = true
		go w.drain(key, q)
	}
}

func (w *Writer) drain(key string, q *keyQueue) {
	for {
		w.mu.Lock()
		if len(q.ops) == 0 {
			q.running = false
			w.mu.Unlock()
			return
		}
		o := q.ops[0]
		q.ops = q.ops[1:]
		w.mu.Unlock()

		var err error
		switch o.kind {
		case opSet:
			err = w.store.Set(context.Background(), key, o.value)
		case opRemove:
			err = w.store.Remove(context.Background(), key)
		}
		if err != nil {
			w.log.Error("storage write failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		w.wg.Done()
	}
}

// Flush blocks until every operation enqueued so far has been applied.
func (w *Writer) Flush() {
	w.wg.Wait()
}
