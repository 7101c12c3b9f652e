package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/idraw/engine/core"
)

// Job is a unit of work run on a worker goroutine. OnComplete and OnFailure
// also run on the worker, so they must not touch the graphics context.
type Job struct {
	Name       string
	Run        func() error
	OnComplete func()
	OnFailure  func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan Job
	wg         sync.WaitGroup
	pending    sync.WaitGroup
	closeOnce  sync.Once
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job, channelSize),
	}
	js.start()
	return js, nil
}

func (js *JobSystem) start() {
	for range js.numWorkers {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job Job) {
	defer js.pending.Done()
	if err := job.Run(); err != nil {
		core.LogError("job '%s' failed: %s", job.Name, err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete()
	}
}

/**
 * @brief Queues a job. Blocks while the queue is full.
 */
func (js *JobSystem) Submit(job Job) {
	js.pending.Add(1)
	js.jobQueue <- job
}

/**
 * @brief Blocks until every submitted job has finished.
 */
func (js *JobSystem) Wait() {
	js.pending.Wait()
}

/**
 * @brief Shuts the job system down after the queued jobs ran.
 */
func (js *JobSystem) Shutdown() error {
	js.closeOnce.Do(func() {
		close(js.jobQueue)
		js.wg.Wait()
	})
	return nil
}
