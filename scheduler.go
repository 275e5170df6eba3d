package main

import (
	"sync/atomic"
	"time"

	"go-memmatch/internal/clock"

	tea "github.com/charmbracelet/bubbletea"
)

// taskMsg delivers a due task to Update so that session callbacks run on
// the program's event loop and never concurrently with commands.
type taskMsg struct {
	task *teaTask
}

type teaTask struct {
	timer   *time.Timer
	fire    func()
	stopped atomic.Bool
}

func (t *teaTask) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.timer.Stop()
	return true
}

// run fires the task unless it was stopped while its message was queued.
func (t *teaTask) run() {
	if t.stopped.Swap(true) {
		return
	}
	t.fire()
}

// teaScheduler arms wall-clock timers that post back into a tea.Program.
type teaScheduler struct {
	send func(tea.Msg)
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{send: func(tea.Msg) {}}
}

// Attach routes due tasks to p. Call it before p.Run.
func (s *teaScheduler) Attach(p *tea.Program) {
	s.send = p.Send
}

func (s *teaScheduler) Schedule(d time.Duration, fire func()) clock.Task {
	t := &teaTask{fire: fire}
	t.timer = time.AfterFunc(d, func() {
		s.send(taskMsg{task: t})
	})
	return t
}
