package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// stageResults carries the pipeline's intermediate state. Any field may be
// nil; the synthesizer substitutes defaults.
type stageResults struct {
	emotion *EmotionResult
	health  *HealthResult
	context *ContextResult
	safety  *SafetyResult
}

// runStages executes the two-stage fan-out/fan-in schedule.
//
// Stage A runs emotion and wearables concurrently; both are read-only over
// the request and independent of each other. Stage B runs context and safety
// concurrently, each consuming Stage A's settled outputs. Stage B never
// starts before Stage A fully completes. Within a stage no ordering is
// observable, and the two tasks never see each other's output.
//
// There are no retries and no timeouts here: a failed analyzer already
// degraded to nil inside its adapter, and a slow one simply delays its
// stage.
func (o *Orchestrator) runStages(ctx context.Context, req *Request, traceID string) *stageResults {
	results := &stageResults{}

	stageStart := time.Now()
	o.runStage(ctx, "A",
		func() { results.emotion = o.runEmotion(ctx, req, traceID) },
		func() { results.health = o.runWearables(ctx, req, traceID) },
	)
	if o.metrics != nil {
		o.metrics.RecordStageLatency("a", time.Since(stageStart))
	}

	slog.Debug("scheduler: stage A settled",
		"trace_id", traceID,
		"emotion_present", results.emotion != nil,
		"health_present", results.health != nil,
		"duration_ms", time.Since(stageStart).Milliseconds())

	stageStart = time.Now()
	o.runStage(ctx, "B",
		func() { results.context = o.runContext(ctx, req, results.emotion, results.health, traceID) },
		func() { results.safety = o.runSafety(ctx, req, results.emotion, results.health, traceID) },
	)
	if o.metrics != nil {
		o.metrics.RecordStageLatency("b", time.Since(stageStart))
	}

	slog.Debug("scheduler: stage B settled",
		"trace_id", traceID,
		"context_present", results.context != nil,
		"safety_present", results.safety != nil,
		"duration_ms", time.Since(stageStart).Milliseconds())

	return results
}

// runStage launches the stage's tasks concurrently and joins on all of them.
// The semaphore bounds in-flight collaborator calls across concurrently
// running requests; a stage completes only when every task has settled,
// success or isolated failure.
func (o *Orchestrator) runStage(ctx context.Context, stage string, tasks ...func()) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(run func()) {
			defer wg.Done()
			if err := o.sem.Acquire(ctx, 1); err != nil {
				// Context cancelled while queued; the task degrades to its
				// absent value exactly like an analyzer failure.
				slog.Warn("scheduler: task abandoned before start", "stage", stage, "error", err)
				return
			}
			defer o.sem.Release(1)
			run()
		}(task)
	}
	wg.Wait()
}

// newStageSemaphore sizes the shared analyzer semaphore.
func newStageSemaphore(maxParallel int) *semaphore.Weighted {
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallelAnalyzers
	}
	return semaphore.NewWeighted(int64(maxParallel))
}
