package minegrid

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tween pairs a normalized gween tween with its update/completion callbacks.
// Created per gesture or transition, destroyed on completion — never pooled.
type tween struct {
	tw         *gween.Tween
	update     func(t float64)
	onComplete func()
	done       bool
}

// task is a deferred call: fn fires once after remaining seconds elapse.
// This replaces nested timer-callback chains with explicit scheduler items
// so cancellation stays a pure epoch comparison inside fn.
type task struct {
	remaining float32
	fn        func()
	done      bool
}

// Scheduler drives every active tween and deferred task against the shared
// frame clock. The engine pumps Update once per frame; there is no
// background goroutine and no preemption. Callbacks run on the frame loop,
// and callbacks may safely schedule more work — items added during Update
// start advancing on the next frame.
type Scheduler struct {
	tweens []*tween
	tasks  []*task
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Tween registers a duration-bound animation. update receives progress eased
// through fn, normalized to [0, 1]; it is called at least once with 1 before
// onComplete fires, and onComplete fires exactly once. Either callback may
// be nil. A non-positive duration completes on the next Update.
func (s *Scheduler) Tween(duration float32, fn ease.TweenFunc, update func(t float64), onComplete func()) {
	if fn == nil {
		fn = ease.Linear
	}
	if duration <= 0 {
		duration = 1e-6
	}
	s.tweens = append(s.tweens, &tween{
		tw:         gween.New(0, 1, duration, fn),
		update:     update,
		onComplete: onComplete,
	})
}

// After registers fn to fire once after delay seconds. A non-positive delay
// fires on the next Update (never synchronously).
func (s *Scheduler) After(delay float32, fn func()) {
	s.tasks = append(s.tasks, &task{remaining: delay, fn: fn})
}

// Active reports how many tweens and tasks are currently scheduled.
func (s *Scheduler) Active() int {
	return len(s.tweens) + len(s.tasks)
}

// Update advances all scheduled work by dt seconds. Items scheduled from
// inside callbacks are not advanced until the next Update.
func (s *Scheduler) Update(dt float32) {
	// Fixed-length iteration: appends from callbacks land past the counts
	// captured here and wait for the next frame. Tasks run before tweens so
	// a deferred call resolves ahead of any tween it may supersede within
	// the same frame.
	n := len(s.tweens)
	m := len(s.tasks)
	for i := 0; i < m; i++ {
		tk := s.tasks[i]
		tk.remaining -= dt
		if tk.remaining <= 0 {
			tk.done = true
			tk.fn()
		}
	}

	for i := 0; i < n; i++ {
		tw := s.tweens[i]
		v, finished := tw.tw.Update(dt)
		if tw.update != nil {
			tw.update(float64(v))
		}
		if finished {
			tw.done = true
			if tw.onComplete != nil {
				tw.onComplete()
			}
		}
	}

	s.compact()
}

// compact drops completed items in place, preserving order.
func (s *Scheduler) compact() {
	live := s.tweens[:0]
	for _, tw := range s.tweens {
		if !tw.done {
			live = append(live, tw)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live

	liveTasks := s.tasks[:0]
	for _, tk := range s.tasks {
		if !tk.done {
			liveTasks = append(liveTasks, tk)
		}
	}
	for i := len(liveTasks); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = liveTasks
}
