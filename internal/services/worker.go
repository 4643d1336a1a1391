package services

import (
	"context"
	"log"
	"sync"
	"time"

	"rolereader/resume-matcher/internal/repositories"
)

const indexQueueSize = 100

// IndexJob asks for a comparison to be embedded. JobDescription carries
// the full sanitized text when known; stored rows only keep a prefix.
type IndexJob struct {
	ComparisonID   uint
	JobDescription string
}

// IndexQueue accepts comparisons waiting to be embedded.
type IndexQueue interface {
	EnqueueJob(job IndexJob)
}

type Worker interface {
	IndexQueue
	Start(ctx context.Context)
	Stop()
}

type worker struct {
	repo        repositories.ComparisonRepository
	index       SemanticIndex
	jobQueue    chan IndexJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

func NewWorker(repo repositories.ComparisonRepository, index SemanticIndex, concurrency int) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		repo:        repo,
		index:       index,
		jobQueue:    make(chan IndexJob, indexQueueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		now:         time.Now,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting index worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	log.Println("✅ Index worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping index worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Index worker stopped")
	})
}

// EnqueueJob implements IndexQueue. It never blocks: a full queue or a
// stopped worker drops the job and the scheduler picks it up later.
func (w *worker) EnqueueJob(job IndexJob) {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue comparison %d\n", job.ComparisonID)
		return
	default:
	}

	select {
	case w.jobQueue <- job:
		log.Printf("📥 Comparison %d enqueued for indexing\n", job.ComparisonID)
	default:
		log.Printf("⚠️  Index queue full, dropping comparison %d\n", job.ComparisonID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case job := <-w.jobQueue:
			if err := w.indexComparison(ctx, job); err != nil {
				log.Printf("❌ Worker #%d failed to index comparison %d: %v\n", workerID, job.ComparisonID, err)
			} else {
				log.Printf("✅ Worker #%d indexed comparison %d\n", workerID, job.ComparisonID)
			}
		}
	}
}

func (w *worker) indexComparison(ctx context.Context, job IndexJob) error {
	comparison, err := w.repo.FindByID(ctx, job.ComparisonID)
	if err != nil {
		return err
	}

	if err := w.index.Index(ctx, comparison, job.JobDescription); err != nil {
		return err
	}

	return w.repo.MarkIndexed(ctx, job.ComparisonID, w.now())
}
