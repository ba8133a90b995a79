package usecase

import (
	"context"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
)

// ComputeMaturityIndex computes the organization-wide governance maturity
// index from the current repository state
func (uc *UseCases) ComputeMaturityIndex(ctx context.Context) (*model.MaturityResult, error) {
	return uc.maturity.ComputeMaturityIndex(ctx)
}
