package anonymizer

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Status values reported to a ProgressCallback.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ProgressCallback is called once per finished file. Calls are serialized;
// current counts finished files in completion order.
type ProgressCallback func(current, total int, filePath, status string)

// AnonymizeBatch anonymizes every path into destinationBase using the naming
// convention and returns the number of files written. Individual failures are
// logged and never stop the batch.
func (a *Anonymizer) AnonymizeBatch(paths []string, destinationBase string) int {
	return a.AnonymizeBatchWithProgress(paths, destinationBase, nil)
}

// AnonymizeBatchWithProgress is AnonymizeBatch with per-file progress reporting.
func (a *Anonymizer) AnonymizeBatchWithProgress(paths []string, destinationBase string, progressCb ProgressCallback) int {
	var (
		success atomic.Int64
		mu      sync.Mutex
		done    int
		g       errgroup.Group
	)
	g.SetLimit(a.workers)

	for _, path := range paths {
		g.Go(func() error {
			ok, _ := a.AnonymizeFile(path, destinationBase, true)
			if ok {
				success.Add(1)
			}

			if progressCb != nil {
				status := StatusFailed
				if ok {
					status = StatusSuccess
				}
				mu.Lock()
				done++
				progressCb(done, len(paths), path, status)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	n := int(success.Load())
	a.log.Info().
		Int("anonymized", n).
		Int("failed", len(paths)-n).
		Str("destination", destinationBase).
		Msgf("%d files anonymized.", n)

	return n
}
