package api

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// DeployObserver receives callbacks from a deployment run for logging and
// metrics.
//
// Implementations should be fast and non-blocking; callbacks fire on the
// simulator's timer goroutine while its state lock is not held.
type DeployObserver interface {
	// OnDeployStart is called once when a run leaves idle.
	OnDeployStart(ctx context.Context, st DeployState)

	// OnStepAdvance is called after each step advance, including the
	// final one.
	OnStepAdvance(ctx context.Context, st DeployState, stepName string, stepIndex int)

	// OnDeployCompleted is called when a run reaches StatusSuccess.
	OnDeployCompleted(ctx context.Context, st DeployState)

	// OnDeployFailed is called when a run reaches StatusError, which only
	// happens through caller-injected failure.
	OnDeployFailed(ctx context.Context, st DeployState, err error)
}

// NoopDeployObserver is a DeployObserver that does nothing. It is the
// default when no observer is configured.
type NoopDeployObserver struct{}

func (NoopDeployObserver) OnDeployStart(ctx context.Context, st DeployState)     {}
func (NoopDeployObserver) OnDeployCompleted(ctx context.Context, st DeployState) {}
func (NoopDeployObserver) OnDeployFailed(ctx context.Context, st DeployState, err error) {
}
func (NoopDeployObserver) OnStepAdvance(ctx context.Context, st DeployState, stepName string, stepIndex int) {
}

// CompositeDeployObserver fans out events to multiple observers.
type CompositeDeployObserver struct {
	observers []DeployObserver
}

// NewCompositeDeployObserver creates an observer that forwards events to
// each non-nil observer in obs.
func NewCompositeDeployObserver(obs ...DeployObserver) DeployObserver {
	filtered := make([]DeployObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopDeployObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeDeployObserver{observers: filtered}
}

func (c *CompositeDeployObserver) OnDeployStart(ctx context.Context, st DeployState) {
	for _, o := range c.observers {
		o.OnDeployStart(ctx, st)
	}
}

func (c *CompositeDeployObserver) OnStepAdvance(ctx context.Context, st DeployState, stepName string, stepIndex int) {
	for _, o := range c.observers {
		o.OnStepAdvance(ctx, st, stepName, stepIndex)
	}
}

func (c *CompositeDeployObserver) OnDeployCompleted(ctx context.Context, st DeployState) {
	for _, o := range c.observers {
		o.OnDeployCompleted(ctx, st)
	}
}

func (c *CompositeDeployObserver) OnDeployFailed(ctx context.Context, st DeployState, err error) {
	for _, o := range c.observers {
		o.OnDeployFailed(ctx, st, err)
	}
}

// LoggingDeployObserver writes structured logs using log/slog.
type LoggingDeployObserver struct {
	Logger *slog.Logger
}

// NewLoggingDeployObserver creates an observer that logs deployment
// lifecycle events with the provided slog.Logger. If logger is nil,
// slog.Default() is used.
func NewLoggingDeployObserver(logger *slog.Logger) DeployObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingDeployObserver{Logger: logger}
}

func (o *LoggingDeployObserver) OnDeployStart(ctx context.Context, st DeployState) {
	o.Logger.InfoContext(ctx, "deploy_start",
		slog.String("deploy_id", st.ID),
	)
}

func (o *LoggingDeployObserver) OnStepAdvance(ctx context.Context, st DeployState, stepName string, stepIndex int) {
	o.Logger.DebugContext(ctx, "deploy_step",
		slog.String("deploy_id", st.ID),
		slog.String("step", stepName),
		slog.Int("step_index", stepIndex),
		slog.Int("progress", st.Progress),
	)
}

func (o *LoggingDeployObserver) OnDeployCompleted(ctx context.Context, st DeployState) {
	o.Logger.InfoContext(ctx, "deploy_completed",
		slog.String("deploy_id", st.ID),
	)
}

func (o *LoggingDeployObserver) OnDeployFailed(ctx context.Context, st DeployState, err error) {
	o.Logger.ErrorContext(ctx, "deploy_failed",
		slog.String("deploy_id", st.ID),
		slog.Int("step_index", st.StepIndex),
		slog.Any("error", err),
	)
}

// DeployMetricsObserver collects simple counters. It implements
// DeployObserver and can be combined with LoggingDeployObserver via
// NewCompositeDeployObserver.
type DeployMetricsObserver struct {
	NoopDeployObserver

	started   atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	steps     atomic.Int64
}

// DeployMetricsSnapshot is an immutable snapshot of DeployMetricsObserver.
type DeployMetricsSnapshot struct {
	DeploysStarted   int64
	DeploysCompleted int64
	DeploysFailed    int64
	StepsAdvanced    int64
}

func (m *DeployMetricsObserver) OnDeployStart(ctx context.Context, st DeployState) {
	m.started.Add(1)
}

func (m *DeployMetricsObserver) OnStepAdvance(ctx context.Context, st DeployState, stepName string, stepIndex int) {
	m.steps.Add(1)
}

func (m *DeployMetricsObserver) OnDeployCompleted(ctx context.Context, st DeployState) {
	m.completed.Add(1)
}

func (m *DeployMetricsObserver) OnDeployFailed(ctx context.Context, st DeployState, err error) {
	m.failed.Add(1)
}

// Snapshot returns the current counter values.
func (m *DeployMetricsObserver) Snapshot() DeployMetricsSnapshot {
	return DeployMetricsSnapshot{
		DeploysStarted:   m.started.Load(),
		DeploysCompleted: m.completed.Load(),
		DeploysFailed:    m.failed.Load(),
		StepsAdvanced:    m.steps.Load(),
	}
}
