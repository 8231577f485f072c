package internal

// Task is one unit of scheduled work, run during the update phase.
type Task interface {
	Run(uc *UpdateContext)
}

// TaskKind is a priority bucket for scheduled work. Lower priorities
// drain first; tasks of equal priority run in FIFO order.
type TaskKind struct {
	Priority int
	Label    string
}

var (
	// KindRender runs before default work, for sinks that feed output.
	KindRender = TaskKind{Priority: 10, Label: "render"}
	// KindDefault is where ordinary effects run.
	KindDefault = TaskKind{Priority: 100, Label: "default"}
)

// taskQueue holds the per-priority FIFO buckets. The lowest and highest
// occupied priorities are tracked so draining scans only the priorities
// between them.
type taskQueue struct {
	buckets map[int][]Task
	start   int
	last    int
	size    int
}

func newTaskQueue() *taskQueue {
	return &taskQueue{buckets: make(map[int][]Task)}
}

func (q *taskQueue) schedule(t Task, kind TaskKind) {
	p := kind.Priority
	if q.size == 0 {
		q.start, q.last = p, p
	} else {
		if p < q.start {
			q.start = p
		}
		if p > q.last {
			q.last = p
		}
	}
	q.buckets[p] = append(q.buckets[p], t)
	q.size++
}

func (q *taskQueue) isEmpty() bool {
	return q.size == 0
}

// pop removes the first task of the lowest occupied priority. Recomputes
// the low end each call because a running task may schedule below the
// current cursor.
func (q *taskQueue) pop() (Task, bool) {
	if q.size == 0 {
		return nil, false
	}
	for p := q.start; p <= q.last; p++ {
		bucket := q.buckets[p]
		if len(bucket) == 0 {
			continue
		}
		t := bucket[0]
		q.buckets[p] = bucket[1:]
		q.size--
		q.start = p
		return t, true
	}
	// counts out of sync with buckets
	q.size = 0
	return nil, false
}

// drain runs tasks in ascending priority, FIFO within a bucket, until
// the queue is empty. Tasks scheduled while draining run in the same
// call.
func (q *taskQueue) drain(uc *UpdateContext) {
	for {
		t, ok := q.pop()
		if !ok {
			return
		}
		t.Run(uc)
	}
}

// flushQueue is the FIFO lane for flush nodes, drained before any task
// bucket so downstream effects see them up to date.
type flushQueue struct {
	nodes []*DependencyNode
}

func (q *flushQueue) push(n *DependencyNode) {
	q.nodes = append(q.nodes, n)
}

func (q *flushQueue) isEmpty() bool {
	return len(q.nodes) == 0
}

func (q *flushQueue) drain(uc *UpdateContext) {
	for len(q.nodes) > 0 {
		n := q.nodes[0]
		q.nodes = q.nodes[1:]
		n.runFlush(uc)
	}
}
