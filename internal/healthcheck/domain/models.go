package domain

import (
	"context"
	"errors"
)

// SubjectHealthStatus is the only event subject the checker answers.
const SubjectHealthStatus = "HealthStatus"

// ArgumentKey is where the status is placed on a health event.
const ArgumentKey = "delivery.module.config"

var ErrUnexpectedSubject = errors.New("unexpected_subject")

// Status tells the host whether the module is ready to price orders.
type Status struct {
	Module    string `json:"module"`
	Completed bool   `json:"completed"`
}

// Report adds per-area detail to Status. Completed keeps the coarse
// meaning; UncoveredAreas only informs the operator.
type Report struct {
	Status
	Slices         int64   `json:"slices"`
	Areas          int64   `json:"areas"`
	UncoveredAreas []int64 `json:"uncovered_areas"`
}

// ModuleConfigEvent is the host's health-status request.
type ModuleConfigEvent struct {
	Subject   string
	Arguments map[string]any
}

type Checker interface {
	IsConfigured(ctx context.Context) (Status, error)
	Report(ctx context.Context) (Report, error)
	OnModuleConfig(ctx context.Context, event *ModuleConfigEvent) error
}
