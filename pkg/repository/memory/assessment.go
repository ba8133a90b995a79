package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[int64]*model.ClauseRiskAssessment
	nextID      int64
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[int64]*model.ClauseRiskAssessment),
		nextID:      1,
	}
}

func copyAssessment(a *model.ClauseRiskAssessment) *model.ClauseRiskAssessment {
	copied := *a
	return &copied
}

func (r *assessmentRepository) Append(ctx context.Context, assessment *model.ClauseRiskAssessment) (*model.ClauseRiskAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxVersion := 0
	for _, a := range r.assessments {
		if a.EntryID == assessment.EntryID && a.Version > maxVersion {
			maxVersion = a.Version
		}
	}

	now := time.Now().UTC()
	created := copyAssessment(assessment)
	created.ID = r.nextID
	created.Version = maxVersion + 1
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.assessments[created.ID] = created
	return copyAssessment(created), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id int64) (*model.ClauseRiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}
	return copyAssessment(assessment), nil
}

func (r *assessmentRepository) GetCurrent(ctx context.Context, entryID int64) (*model.ClauseRiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var current *model.ClauseRiskAssessment
	for _, a := range r.assessments {
		if a.EntryID != entryID {
			continue
		}
		if current == nil || a.Version > current.Version {
			current = a
		}
	}
	if current == nil {
		return nil, goerr.Wrap(ErrNotFound, "no assessment for entry", goerr.V("entryID", entryID))
	}
	return copyAssessment(current), nil
}

func (r *assessmentRepository) ListByEntry(ctx context.Context, entryID int64) ([]*model.ClauseRiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var assessments []*model.ClauseRiskAssessment
	for _, a := range r.assessments {
		if a.EntryID == entryID {
			assessments = append(assessments, copyAssessment(a))
		}
	}

	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].Version < assessments[j].Version
	})
	return assessments, nil
}

func (r *assessmentRepository) UpdateStatus(ctx context.Context, id int64, status types.AssessmentStatus) (*model.ClauseRiskAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	updated := copyAssessment(existing)
	updated.Status = status
	updated.UpdatedAt = time.Now().UTC()

	r.assessments[id] = updated
	return copyAssessment(updated), nil
}
