package qwalk

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

const timeoutMsg = "Test timed out waiting for value retrieval"

func newTestPool(ctx context.Context) *Q {
	return &Q{
		ctx:     ctx,
		workers: make(chan chan Job, 1),
		space:   newQuantumSpace(time.Minute),
		metrics: NewMetrics(),
	}
}

func TestWorker(t *testing.T) {
	Convey("Given a worker", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		pool := newTestPool(ctx)

		worker := &Worker{
			pool: pool,
			jobs: make(chan Job, 1),
		}

		Reset(func() {
			cancel()
			pool.space.Close()
		})

		Convey("It should process a walk job successfully", func() {
			job := Job{
				ID: "job_success",
				Fn: func() (any, error) {
					return walkVertices(AnglePair{}, 0)
				},
				StartTime: time.Now(),
				TTL:       10 * time.Second,
			}

			worker.jobs <- job
			go worker.run()

			result := pool.space.Await(job.ID)
			select {
			case <-time.After(2 * time.Second):
				t.Fatal(timeoutMsg)
			case value := <-result:
				So(value.Error, ShouldBeNil)
				row, ok := value.Value.(VertexDistribution)
				So(ok, ShouldBeTrue)
				So(row.At(0), ShouldAlmostEqual, 1, tolerance)
			}
		})

		Convey("It should report a failing walk", func() {
			job := Job{
				ID: "job_negative",
				Fn: func() (any, error) {
					return walkVertices(AnglePair{}, -1)
				},
				StartTime: time.Now(),
			}

			worker.jobs <- job
			go worker.run()

			result := pool.space.Await(job.ID)
			select {
			case <-time.After(2 * time.Second):
				t.Fatal(timeoutMsg)
			case value := <-result:
				So(value.Error, ShouldNotBeNil)
				So(value.Error.Error(), ShouldContainSubstring, "job_negative failed")
			}
		})

		Convey("It should stop when the pool context is cancelled", func() {
			done := make(chan struct{})
			go func() {
				worker.run()
				close(done)
			}()

			cancel()

			select {
			case <-time.After(2 * time.Second):
				t.Fatal("worker did not stop")
			case <-done:
			}
		})
	})
}
