package domain

import "context"

// ServicePort is consumed by handlers, the CLI and other modules
type ServicePort interface {
	RecommendNext(ctx context.Context, in RecommendNextInput) (RecommendNextOutput, error)
	MissedOptions(ctx context.Context, in MissedOptionsInput) (MissedOptionsOutput, error)
	RecomputeState(ctx context.Context, in RecomputeStateInput) (RecomputeStateOutput, error)
}
