package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

// Job pairs a payload with its submission index so results can be put back
// in order.
type Job[T any] struct {
	ID      int
	Payload T
}

type Result[G any] struct {
	ID    int
	Value G
}

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan Result[G]
	wg         sync.WaitGroup
	nextID     int
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], jobQueueSize),
		results:    make(chan Result[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- Result[G]{ID: job.ID, Value: jobFunc(ctx, job.Payload)}
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// Wait blocks until every worker has drained the closed queue.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

// AddJob is not safe for concurrent use.
func (wp *WorkerPool[T, G]) AddJob(job T) int {
	id := wp.nextID
	wp.nextID++
	wp.jobQueue <- Job[T]{ID: id, Payload: job}
	return id
}

func (wp *WorkerPool[T, G]) CollectResults() chan Result[G] {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Map runs fn over jobs with numWorkers goroutines and returns the results in
// job order.
func Map[T any, G any](ctx context.Context, numWorkers int, jobs []T, fn JobFunc[T, G]) []G {
	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	wp.Start(ctx, fn)
	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()
	wp.Wait()

	out := make([]G, len(jobs))
	for res := range wp.CollectResults() {
		out[res.ID] = res.Value
	}
	return out
}
