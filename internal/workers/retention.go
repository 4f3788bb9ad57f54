package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"sitecomments/domain"
)

// retentionWorker hard-deletes threads whose root and every reply have
// been soft-deleted for longer than the retention window. Threads with
// any live reply are never touched, so orphaned replies keep their
// tombstoned parent.
type retentionWorker struct {
	commentRepo domain.CommentRepository
	retention   time.Duration
	interval    time.Duration
}

func NewRetentionWorker(commentRepo domain.CommentRepository, retention, interval time.Duration) *retentionWorker {
	return &retentionWorker{
		commentRepo: commentRepo,
		retention:   retention,
		interval:    interval,
	}
}

func (w *retentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down retention worker")
			return
		}
	}
}

func (w *retentionWorker) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)
	purged, err := w.commentRepo.PurgeDeletedThreads(ctx, cutoff)
	if err != nil {
		logrus.Errorf("retention sweep failed: %v", err)
		return
	}
	if len(purged) > 0 {
		logrus.Infof("retention sweep purged %d deleted threads", len(purged))
	}
}
