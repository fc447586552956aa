// Package task implements the strict-priority task queue that serializes
// every producer into the dispatcher.
package task

import (
	"container/heap"
	"sync"

	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
)

// Priority levels, ascending = more urgent.
const (
	PriorityKeyAndInternal = 1
	PriorityExternal       = 2
	PriorityPeriodic       = 3
)

// Task is one unit of work pushed by a producer and popped by the
// dispatcher.
type Task struct {
	Priority int
	Sequence uint64
	Msg      msgin.MsgIn
	Key      *keys.Key
}

// Less orders tasks primarily by Priority ascending, secondarily by
// Sequence ascending (FIFO within the same priority).
func (t Task) Less(o Task) bool {
	if t.Priority != o.Priority {
		return t.Priority < o.Priority
	}
	return t.Sequence < o.Sequence
}

// innerHeap implements container/heap.Interface over a slice of Task.
type innerHeap []Task

func (h innerHeap) Len() int            { return len(h) }
func (h innerHeap) Less(i, j int) bool  { return h[i].Less(h[j]) }
func (h innerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *innerHeap) Push(x interface{}) { *h = append(*h, x.(Task)) }
func (h *innerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is a concurrency-safe, blocking priority queue of Task values fed
// by many producer goroutines and drained by a single dispatcher
// goroutine.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	heap     innerHeap
	sequence uint64
	closed   bool
}

// NewQueue returns an empty Queue ready to use.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues msg at the given priority, attaching an originating key if
// any, and assigns it the next monotonic sequence number.
func (q *Queue) Push(priority int, msg msgin.MsgIn, key *keys.Key) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.sequence++
	heap.Push(&q.heap, Task{Priority: priority, Sequence: q.sequence, Msg: msg, Key: key})
	q.cond.Signal()
}

// Pop blocks until a task is available and returns the highest-priority
// one, or returns ok=false if the queue has been closed and drained.
func (q *Queue) Pop() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.heap.Len() == 0 {
		if q.closed {
			return Task{}, false
		}
		q.cond.Wait()
	}
	t := heap.Pop(&q.heap).(Task)
	return t, true
}

// Close unblocks any pending Pop once the queue drains.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
