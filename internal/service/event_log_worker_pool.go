package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultEventLogWorkerCount        = 2
	defaultEventLogQueueSize          = 1024
	defaultEventLogTaskTimeoutSeconds = 5
	eventLogDropLogInterval           = 5 * time.Second
)

// EventLogTask is one unit of work for the event log pool.
type EventLogTask func(ctx context.Context)

// EventLogSubmitMode reports how a submitted task was handled.
type EventLogSubmitMode string

const (
	EventLogSubmitModeEnqueued EventLogSubmitMode = "enqueued"
	EventLogSubmitModeDropped  EventLogSubmitMode = "dropped"
	EventLogSubmitModeSync     EventLogSubmitMode = "sync_fallback"
)

type EventLogWorkerPoolOptions struct {
	WorkerCount    int
	QueueSize      int
	TaskTimeout    time.Duration
	OverflowPolicy string
}

type EventLogWorkerPoolStats struct {
	RunningWorkers     int64
	WaitingTasks       uint64
	SubmittedTasks     uint64
	SuccessfulTasks    uint64
	DroppedQueueFull   uint64
	DroppedPoolStopped uint64
	SyncFallbackTasks  uint64
}

// EventLogWorkerPool writes raw event bodies off the request path.
type EventLogWorkerPool struct {
	pool           pond.Pool
	taskTimeout    time.Duration
	overflowPolicy string

	droppedQueueFull   atomic.Uint64
	droppedPoolStopped atomic.Uint64
	syncFallback       atomic.Uint64
	lastDropLogNanos   atomic.Int64

	stopOnce sync.Once
}

func NewEventLogWorkerPool(cfg *config.Config) *EventLogWorkerPool {
	return NewEventLogWorkerPoolWithOptions(eventLogPoolOptionsFromConfig(cfg))
}

func NewEventLogWorkerPoolWithOptions(opts EventLogWorkerPoolOptions) *EventLogWorkerPool {
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = defaultEventLogWorkerCount
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultEventLogQueueSize
	}
	if opts.TaskTimeout <= 0 {
		opts.TaskTimeout = time.Duration(defaultEventLogTaskTimeoutSeconds) * time.Second
	}
	if opts.OverflowPolicy == "" {
		opts.OverflowPolicy = config.EventLogOverflowPolicyDrop
	}
	return &EventLogWorkerPool{
		pool:           pond.NewPool(opts.WorkerCount, pond.WithQueueSize(opts.QueueSize)),
		taskTimeout:    opts.TaskTimeout,
		overflowPolicy: opts.OverflowPolicy,
	}
}

// Submit enqueues task. A full queue either drops the task or runs it inline, per overflow policy.
func (p *EventLogWorkerPool) Submit(task EventLogTask) EventLogSubmitMode {
	if p == nil || task == nil {
		return EventLogSubmitModeDropped
	}
	if p.pool.Stopped() {
		p.droppedPoolStopped.Add(1)
		p.logDrop("stopped")
		return EventLogSubmitModeDropped
	}

	if _, ok := p.pool.TrySubmit(func() { p.execute(task) }); ok {
		return EventLogSubmitModeEnqueued
	}
	if p.pool.Stopped() {
		p.droppedPoolStopped.Add(1)
		p.logDrop("stopped")
		return EventLogSubmitModeDropped
	}
	if p.overflowPolicy == config.EventLogOverflowPolicySync {
		p.syncFallback.Add(1)
		p.execute(task)
		return EventLogSubmitModeSync
	}

	p.droppedQueueFull.Add(1)
	p.logDrop("full")
	return EventLogSubmitModeDropped
}

func (p *EventLogWorkerPool) Stats() EventLogWorkerPoolStats {
	if p == nil {
		return EventLogWorkerPoolStats{}
	}
	return EventLogWorkerPoolStats{
		RunningWorkers:     p.pool.RunningWorkers(),
		WaitingTasks:       p.pool.WaitingTasks(),
		SubmittedTasks:     p.pool.SubmittedTasks(),
		SuccessfulTasks:    p.pool.SuccessfulTasks(),
		DroppedQueueFull:   p.droppedQueueFull.Load(),
		DroppedPoolStopped: p.droppedPoolStopped.Load(),
		SyncFallbackTasks:  p.syncFallback.Load(),
	}
}

// Stop closes the pool and waits for queued tasks.
func (p *EventLogWorkerPool) Stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(func() {
		p.pool.StopAndWait()
	})
}

func (p *EventLogWorkerPool) execute(task EventLogTask) {
	ctx, cancel := context.WithTimeout(context.Background(), p.taskTimeout)
	defer cancel()

	defer func() {
		if recovered := recover(); recovered != nil {
			logger.L().With(
				zap.String("component", "service.event_log_worker_pool"),
				zap.Any("panic", recovered),
			).Error("event_log.task_panic")
		}
	}()

	task(ctx)
}

func (p *EventLogWorkerPool) logDrop(reason string) {
	now := time.Now().UnixNano()
	last := p.lastDropLogNanos.Load()
	if now-last < int64(eventLogDropLogInterval) {
		return
	}
	if !p.lastDropLogNanos.CompareAndSwap(last, now) {
		return
	}

	stats := p.Stats()
	logger.L().With(
		zap.String("component", "service.event_log_worker_pool"),
		zap.String("reason", reason),
		zap.String("overflow_policy", p.overflowPolicy),
		zap.Uint64("waiting_tasks", stats.WaitingTasks),
		zap.Uint64("dropped_queue_full", stats.DroppedQueueFull),
		zap.Uint64("dropped_pool_stopped", stats.DroppedPoolStopped),
	).Warn("event_log.task_dropped")
}

func eventLogPoolOptionsFromConfig(cfg *config.Config) EventLogWorkerPoolOptions {
	if cfg == nil {
		return EventLogWorkerPoolOptions{}
	}
	return EventLogWorkerPoolOptions{
		WorkerCount:    cfg.Events.Workers,
		QueueSize:      cfg.Events.QueueSize,
		TaskTimeout:    time.Duration(cfg.Events.TaskTimeoutSeconds) * time.Second,
		OverflowPolicy: cfg.Events.OverflowPolicy,
	}
}

const (
	EventLogKindEvent  = "event"
	EventLogKindReport = "bmx-report"
)

// EventLogSink records raw device reports to the event log.
type EventLogSink struct {
	pool *EventLogWorkerPool
}

func NewEventLogSink(pool *EventLogWorkerPool) *EventLogSink {
	return &EventLogSink{pool: pool}
}

// Record queues one event log line. body is copied.
func (s *EventLogSink) Record(kind, deviceID, uri string, body []byte) EventLogSubmitMode {
	payload := string(body)
	return s.pool.Submit(func(ctx context.Context) {
		fields := []zap.Field{
			zap.String("type", kind),
			zap.String("uri", uri),
			zap.String("body", payload),
		}
		if deviceID != "" {
			fields = append(fields, zap.String("device_id", deviceID))
		}
		logger.Event().Info(kind, fields...)
	})
}
