package console

import "time"

// Task - отложенный вызов, который можно отменить.
type Task interface {
	Stop()
}

// Scheduler откладывает вызов f на d. Вызов выполняется в цикле сессии.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// loopScheduler переносит срабатывание таймера в цикл сессии.
// Флаг cancelled читается и пишется только внутри цикла.
type loopScheduler struct {
	post func(func())
}

type timerTask struct {
	timer     *time.Timer
	cancelled bool
}

func (s *loopScheduler) AfterFunc(d time.Duration, f func()) Task {
	t := &timerTask{}
	t.timer = time.AfterFunc(d, func() {
		s.post(func() {
			if t.cancelled {
				return
			}
			t.cancelled = true
			f()
		})
	})
	return t
}

func (t *timerTask) Stop() {
	t.cancelled = true
	t.timer.Stop()
}

// loop - периодическая задача компонента: не больше одного ожидающего вызова.
type loop struct {
	sched Scheduler
	task  Task
}

func (l *loop) schedule(d time.Duration, f func()) {
	l.cancel()
	l.task = l.sched.AfterFunc(d, func() {
		l.task = nil
		f()
	})
}

func (l *loop) cancel() {
	if l.task != nil {
		l.task.Stop()
		l.task = nil
	}
}

func (l *loop) pending() bool {
	return l.task != nil
}
