package watch

import "sync"

// CommandSource hands the frame driver the commands gathered since the last
// tick. Drain is called once per tick from the driver goroutine.
type CommandSource interface {
	Drain() []Command
}

// Queue is a mutex-guarded FIFO for producers running on their own
// goroutines, such as the resize watcher.
type Queue struct {
	mu    sync.Mutex
	items []Command
	limit int
}

const defaultQueueLimit = 64

// NewQueue returns an empty queue. Pushes beyond limit drop the oldest entry;
// limit <= 0 selects a default.
func NewQueue(limit int) *Queue {
	if limit <= 0 {
		limit = defaultQueueLimit
	}
	return &Queue{limit: limit}
}

// Push appends c.
func (q *Queue) Push(c Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.limit <= 0 {
		q.limit = defaultQueueLimit
	}
	if len(q.items) >= q.limit {
		q.items = append(q.items[:0], q.items[1:]...)
	}
	q.items = append(q.items, c)
}

// Drain returns and clears everything queued so far.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
