package model

import (
	"encoding/json"
	"time"
)

// RunKind distinguishes the two engine entry points.
type RunKind string

const (
	RunKindEvaluate RunKind = "evaluate"
	RunKindForm     RunKind = "form"
)

// EvaluationRun is one persisted engine invocation: the input it was given
// and the result it produced, both as JSON snapshots.
type EvaluationRun struct {
	ID        string          `json:"id"`
	Kind      RunKind         `json:"kind"`
	Owner     string          `json:"owner"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
