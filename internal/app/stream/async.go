package stream

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"driftworld/internal/domain/world"
)

// resultBuffer bounds completed builds waiting for the next tick to publish
// them. Submission is capped per tick by the window size, which stays far
// below this.
const resultBuffer = 256

type buildResult struct {
	coord world.ZoneCoord
	zone  *world.Zone
	err   error
}

// asyncBuilder runs template instantiation on a bounded pool. Only the tick
// goroutine touches pending and publishes results, so the zone table stays
// single-writer; workers never see the table at all.
type asyncBuilder struct {
	sem     *semaphore.Weighted
	results chan buildResult
	pending map[world.ZoneCoord]struct{}
}

func newAsyncBuilder(workers int) *asyncBuilder {
	return &asyncBuilder{
		sem:     semaphore.NewWeighted(int64(workers)),
		results: make(chan buildResult, resultBuffer),
		pending: make(map[world.ZoneCoord]struct{}),
	}
}

// submitAsync schedules a build for a missing coordinate. At most one build
// per coordinate is in flight; a saturated pool just retries next tick.
func (s *Streamer) submitAsync(_ context.Context, coord world.ZoneCoord) {
	if _, inFlight := s.async.pending[coord]; inFlight {
		return
	}
	if !s.async.sem.TryAcquire(1) {
		return
	}
	s.async.pending[coord] = struct{}{}
	go func() {
		zone, err := s.generate(coord)
		s.async.results <- buildResult{coord: coord, zone: zone, err: err}
		s.async.sem.Release(1)
	}()
}

// drainAsync publishes every completed build whose coordinate is still
// desired. Results for coordinates that left the window while in flight are
// discarded, which keeps the active-set invariant intact without cancellation.
func (s *Streamer) drainAsync(ctx context.Context, desired map[world.ZoneCoord]struct{}) (built, restored, failed int) {
	for {
		select {
		case r := <-s.async.results:
			delete(s.async.pending, r.coord)
			if r.err != nil {
				s.recordFailure(r.coord, r.err)
				failed++
				continue
			}
			if _, want := desired[r.coord]; !want {
				s.log.Debug("discarding stale build",
					zap.String("zone", r.coord.ZoneID()))
				continue
			}
			if _, resident := s.zones[r.coord]; resident {
				continue
			}
			if s.publish(ctx, r.zone) {
				restored++
			}
			built++
		default:
			return built, restored, failed
		}
	}
}
