package rendering

import (
	"raycaster/internal/mathutil"
	"raycaster/internal/raycast"
	"raycaster/internal/threading/core"
)

// inlineColumnLimit is the largest frame cast on the calling goroutine
const inlineColumnLimit = 8

// ParallelRenderer fans column casts out over a worker pool and gathers the
// hits before returning, so compositing always sees a complete frame.
type ParallelRenderer struct {
	workerPool *core.WorkerPool
}

// NewParallelRenderer creates a parallel renderer with numWorkers workers,
// or one per CPU when numWorkers is zero
func NewParallelRenderer(numWorkers int) *ParallelRenderer {
	pool := core.NewWorkerPool(numWorkers)
	pool.Start()
	return &ParallelRenderer{workerPool: pool}
}

// NumWorkers returns the size of the pool columns are spread over
func (pr *ParallelRenderer) NumWorkers() int {
	return pr.workerPool.GetNumWorkers()
}

// RenderColumns fills hits[i] with castFunc(i) for every column. castFunc must
// only read shared state; it is called from several goroutines at once.
func (pr *ParallelRenderer) RenderColumns(hits []raycast.Hit, castFunc func(column int) raycast.Hit) {
	// Very small workloads: process inline to avoid synchronization overhead
	if len(hits) <= inlineColumnLimit {
		for column := range hits {
			hits[column] = castFunc(column)
		}
		return
	}

	pr.workerPool.ParallelFor(0, len(hits), func(column int) {
		hits[column] = castFunc(column)
	})
}

// RenderFrame casts every column of a frame for the given view
func (pr *ParallelRenderer) RenderFrame(caster *raycast.Caster, pos, dir, plane mathutil.Vec2, hits []raycast.Hit) {
	pr.RenderColumns(hits, func(column int) raycast.Hit {
		return caster.CastColumn(pos, dir, plane, column)
	})
}

// Stop shuts down the parallel renderer
func (pr *ParallelRenderer) Stop() {
	pr.workerPool.Stop()
}
