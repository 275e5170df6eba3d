package clock

import (
	"sort"
	"time"
)

// Task is a scheduled callback that can be cancelled before it fires.
type Task interface {
	// Stop cancels the task. It reports whether the call prevented the task from firing.
	Stop() bool
}

// Scheduler runs fire once after d has elapsed. Implementations must deliver
// fire on the same goroutine that owns the game state.
type Scheduler interface {
	Schedule(d time.Duration, fire func()) Task
}

// Every runs fire once per period until the returned task is stopped.
func Every(s Scheduler, period time.Duration, fire func()) Task {
	r := &repeating{sched: s, period: period, fire: fire}
	r.arm()
	return r
}

type repeating struct {
	sched   Scheduler
	period  time.Duration
	fire    func()
	current Task
	stopped bool
}

func (r *repeating) arm() {
	r.current = r.sched.Schedule(r.period, func() {
		if r.stopped {
			return
		}
		r.fire()
		if !r.stopped {
			r.arm()
		}
	})
}

func (r *repeating) Stop() bool {
	if r.stopped {
		return false
	}
	r.stopped = true
	if r.current != nil {
		r.current.Stop()
	}
	return true
}

// Manual is a Scheduler driven by virtual time. Nothing fires until Advance is called.
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m       *Manual
	due     time.Duration
	seq     int
	fire    func()
	stopped bool
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Schedule(d time.Duration, fire func()) Task {
	m.seq++
	t := &manualTask{m: m, due: m.now + d, seq: m.seq, fire: fire}
	m.tasks = append(m.tasks, t)
	return t
}

func (t *manualTask) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.m.remove(t)
	return true
}

// Now returns the virtual time elapsed since the scheduler was created.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of tasks waiting to fire.
func (m *Manual) Pending() int {
	return len(m.tasks)
}

// Advance moves virtual time forward by d, firing every task that falls due,
// including tasks scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.next()
		if next == nil || next.due > target {
			break
		}
		m.remove(next)
		next.stopped = true
		m.now = next.due
		next.fire()
	}
	m.now = target
}

func (m *Manual) next() *manualTask {
	if len(m.tasks) == 0 {
		return nil
	}
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due == m.tasks[j].due {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].due < m.tasks[j].due
	})
	return m.tasks[0]
}

func (m *Manual) remove(t *manualTask) {
	for i, other := range m.tasks {
		if other == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}
