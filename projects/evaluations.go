// Copyright (c) Microsoft. All rights reserved.

package projects

import (
	"context"
	"net/http"
	"net/url"
)

// Metric is a quality dimension scored by an evaluation.
type Metric string

const (
	MetricHelpfulness Metric = "helpfulness"
	MetricAccuracy    Metric = "accuracy"
	MetricQuality     Metric = "quality"
)

// EvaluationStatus is the server-side state of an [Evaluation].
type EvaluationStatus string

const (
	EvaluationStatusQueued    EvaluationStatus = "queued"
	EvaluationStatusRunning   EvaluationStatus = "running"
	EvaluationStatusCompleted EvaluationStatus = "completed"
	EvaluationStatusFailed    EvaluationStatus = "failed"
)

// IsPending reports whether the evaluation is still being computed.
func (s EvaluationStatus) IsPending() bool {
	return s == EvaluationStatusQueued || s == EvaluationStatusRunning
}

// Evaluation holds the scores assigned to an agent run. Scores range
// from 0 to 10.
type Evaluation struct {
	ID        string             `json:"id"`
	Status    EvaluationStatus   `json:"status"`
	CreatedAt int64              `json:"created_at"`
	ThreadID  string             `json:"thread_id,omitempty"`
	RunID     string             `json:"run_id"`
	Scores    map[Metric]float64 `json:"scores"`
	Feedback  string             `json:"feedback"`
}

// EvaluateRunOptions are the parameters of [EvaluationsClient.EvaluateRun].
type EvaluateRunOptions struct {
	ThreadID string   `json:"thread_id,omitempty"`
	RunID    string   `json:"run_id"`
	Metrics  []Metric `json:"metrics"`
}

// EvaluationsClient scores completed agent runs.
type EvaluationsClient struct {
	c *Client
}

// EvaluateRun requests an evaluation of a run. The result may still be
// pending; see [EvaluationsClient.WaitForEvaluation].
func (e *EvaluationsClient) EvaluateRun(ctx context.Context, opts EvaluateRunOptions) (*Evaluation, error) {
	var out Evaluation
	if err := e.c.call(ctx, http.MethodPost, "evaluations/agentruns", nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEvaluation fetches an evaluation.
func (e *EvaluationsClient) GetEvaluation(ctx context.Context, evaluationID string) (*Evaluation, error) {
	var out Evaluation
	if err := e.c.call(ctx, http.MethodGet, "evaluations/"+url.PathEscape(evaluationID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForEvaluation polls until the evaluation leaves the queued/running
// states. An evaluation returned complete by EvaluateRun is not fetched again.
func (e *EvaluationsClient) WaitForEvaluation(ctx context.Context, ev *Evaluation, opts *PollOptions) (*Evaluation, error) {
	if !ev.Status.IsPending() {
		return ev, nil
	}
	return PollUntil(ctx,
		func(ctx context.Context) (*Evaluation, error) { return e.GetEvaluation(ctx, ev.ID) },
		func(ev *Evaluation) bool { return ev.Status.IsPending() },
		opts,
	)
}
