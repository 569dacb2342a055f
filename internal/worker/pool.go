package worker

import (
	"sync"

	"github.com/pokerhub/pokerhub-backend/internal/metrics"
)

type task func()

// Pool runs background tasks (audit appends) on a fixed set of goroutines.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) {
	p.jobs <- f
	metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
}

// Stop drains the queue and waits for in-flight tasks.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
