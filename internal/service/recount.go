package service

import (
	"context"
	"log"
	"time"

	"socialfeed/internal/repository"
)

// Recounts is what the feed service needs from the recount worker: schedule
// a counter recomputation and return immediately.
type Recounts interface {
	RecountFollowers(userID int64)
	RecountPostLikes(postID int64)
	RecountPostComments(postID int64)
}

type recountKind int

const (
	recountFollowers recountKind = iota
	recountPostLikes
	recountPostComments
)

func (k recountKind) String() string {
	switch k {
	case recountFollowers:
		return "followers"
	case recountPostLikes:
		return "post likes"
	case recountPostComments:
		return "post comments"
	}
	return "unknown"
}

type recountJob struct {
	kind recountKind
	id   int64
}

// Recounter recomputes denormalized counters (follower_count, num_likes,
// num_comments) after edge mutations. Jobs run on a small worker pool
// detached from the originating request: enqueueing never blocks, failures
// are logged and not retried, and pending jobs are dropped on shutdown.
// Counters are therefore eventually consistent.
type Recounter struct {
	accountRepo repository.AccountRepository
	feedRepo    repository.FeedRepository
	jobs        chan recountJob
}

const (
	recountQueueSize  = 256
	recountWorkers    = 2
	recountJobTimeout = 10 * time.Second
)

func NewRecounter(accountRepo repository.AccountRepository, feedRepo repository.FeedRepository) *Recounter {
	r := &Recounter{
		accountRepo: accountRepo,
		feedRepo:    feedRepo,
		jobs:        make(chan recountJob, recountQueueSize),
	}

	for i := 0; i < recountWorkers; i++ {
		go r.worker()
	}

	return r
}

func (r *Recounter) RecountFollowers(userID int64) {
	r.enqueue(recountJob{kind: recountFollowers, id: userID})
}

func (r *Recounter) RecountPostLikes(postID int64) {
	r.enqueue(recountJob{kind: recountPostLikes, id: postID})
}

func (r *Recounter) RecountPostComments(postID int64) {
	r.enqueue(recountJob{kind: recountPostComments, id: postID})
}

func (r *Recounter) enqueue(job recountJob) {
	select {
	case r.jobs <- job:
	default:
		// Best effort: a saturated queue drops the job rather than
		// stalling the request that triggered it.
		log.Printf("recount: queue full, dropping %s recount for id %d", job.kind, job.id)
	}
}

func (r *Recounter) worker() {
	for job := range r.jobs {
		if err := r.run(job); err != nil {
			log.Printf("recount: %s recount for id %d failed: %v", job.kind, job.id, err)
		}
	}
}

func (r *Recounter) run(job recountJob) error {
	ctx, cancel := context.WithTimeout(context.Background(), recountJobTimeout)
	defer cancel()

	switch job.kind {
	case recountFollowers:
		count, err := r.feedRepo.CountFollowers(ctx, job.id)
		if err != nil {
			return err
		}
		return r.accountRepo.UpdateFollowerCount(ctx, job.id, count)

	case recountPostLikes:
		count, err := r.feedRepo.CountPostLikes(ctx, job.id)
		if err != nil {
			return err
		}
		return r.feedRepo.UpdatePostLikeCount(ctx, job.id, count)

	case recountPostComments:
		count, err := r.feedRepo.CountPostComments(ctx, job.id)
		if err != nil {
			return err
		}
		return r.feedRepo.UpdatePostCommentCount(ctx, job.id, count)
	}

	return nil
}

// Close stops the workers. Jobs still queued are abandoned.
func (r *Recounter) Close() {
	close(r.jobs)
}
