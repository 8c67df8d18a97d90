package backend

import "sync"

// Dispatcher is a fixed-size worker pool the world uses to spread simulation
// work across threads. The pool size is chosen by the caller at engine
// initialization.
type Dispatcher struct {
	tasks    chan task
	workers  sync.WaitGroup
	released bool
}

type task struct {
	run  func()
	done *sync.WaitGroup
}

// NewDispatcher creates a dispatcher with the given number of workers.
// A count below 1 is clamped to 1.
func NewDispatcher(workerCount int) *Dispatcher {
	if workerCount < 1 {
		workerCount = 1
	}

	d := &Dispatcher{
		tasks: make(chan task, 64),
	}
	d.workers.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.workers.Done()
	for t := range d.tasks {
		t.run()
		t.done.Done()
	}
}

// Submit queues a task for execution and registers it with the step's wait
// group. The wait group is decremented when the task completes.
func (d *Dispatcher) Submit(run func(), done *sync.WaitGroup) {
	done.Add(1)
	d.tasks <- task{run: run, done: done}
}

// Release stops the workers. Queued tasks are drained first.
func (d *Dispatcher) Release() {
	if d == nil || d.released {
		return
	}
	d.released = true
	close(d.tasks)
	d.workers.Wait()
}

func (d *Dispatcher) alive() bool {
	return d != nil && !d.released
}
