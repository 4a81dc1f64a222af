package concurrent

import (
	"errors"
	"time"
)

var ErrScheduleTimeout = errors.New("schedule error: timed out")

// GoroutinePool runs short tasks on a bounded set of reusable goroutines. used by the websocket server so a
// burst of connections does not spawn one goroutine per read event.
type GoroutinePool struct {
	sem  chan struct{}
	work chan func()
	done chan struct{}
}

// NewGoroutinePool at most size goroutines, queue pending tasks.
func NewGoroutinePool(size, queue int) *GoroutinePool {
	if size < 1 {
		size = 1
	}
	return &GoroutinePool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
		done: make(chan struct{}),
	}
}

// Spawn starts n idle goroutines ahead of time.
func (p *GoroutinePool) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case p.sem <- struct{}{}:
			go p.worker(func() {})
		default:
			return
		}
	}
}

// Schedule blocks until task is accepted by the pool.
func (p *GoroutinePool) Schedule(task func()) {
	_ = p.schedule(task, nil)
}

// ScheduleTimeout like Schedule but gives up after timeout.
func (p *GoroutinePool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *GoroutinePool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case <-p.done:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *GoroutinePool) worker(task func()) {
	defer func() { <-p.sem }()

	task()

	for {
		select {
		case <-p.done:
			return
		case task := <-p.work:
			task()
		}
	}
}

// Close stops idle workers. tasks already running finish.
func (p *GoroutinePool) Close() {
	close(p.done)
}
