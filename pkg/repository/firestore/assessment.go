package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type assessmentDocument struct {
	ID           int64     `firestore:"id"`
	EntryID      int64     `firestore:"entry_id"`
	Version      int       `firestore:"version"`
	Financial    int       `firestore:"financial"`
	Cyber        int       `firestore:"cyber"`
	Liability    int       `firestore:"liability"`
	Regulatory   int       `firestore:"regulatory"`
	Performance  int       `firestore:"performance"`
	Percent      int       `firestore:"percent"`
	Level        string    `firestore:"level"`
	Status       string    `firestore:"status"`
	RequiredTier string    `firestore:"required_tier"`
	Assessor     string    `firestore:"assessor"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func toAssessmentDocument(a *model.ClauseRiskAssessment) *assessmentDocument {
	return &assessmentDocument{
		ID:           a.ID,
		EntryID:      a.EntryID,
		Version:      a.Version,
		Financial:    a.Scores.Financial,
		Cyber:        a.Scores.Cyber,
		Liability:    a.Scores.Liability,
		Regulatory:   a.Scores.Regulatory,
		Performance:  a.Scores.Performance,
		Percent:      a.Percent,
		Level:        a.Level.String(),
		Status:       a.Status.String(),
		RequiredTier: a.RequiredTier.String(),
		Assessor:     a.Assessor,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (d *assessmentDocument) toModel() *model.ClauseRiskAssessment {
	return &model.ClauseRiskAssessment{
		ID:      d.ID,
		EntryID: d.EntryID,
		Version: d.Version,
		Scores: model.FactorScores{
			Financial:   d.Financial,
			Cyber:       d.Cyber,
			Liability:   d.Liability,
			Regulatory:  d.Regulatory,
			Performance: d.Performance,
		},
		Percent:      d.Percent,
		Level:        types.RiskLevel(d.Level),
		Status:       types.AssessmentStatus(d.Status),
		RequiredTier: types.ApprovalType(d.RequiredTier),
		Assessor:     d.Assessor,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *assessmentRepository) assessmentsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessments"
	}
	return "assessments"
}

func (r *assessmentRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *assessmentRepository) Append(ctx context.Context, assessment *model.ClauseRiskAssessment) (*model.ClauseRiskAssessment, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "assessment_counter")
	if err != nil {
		return nil, err
	}

	current, err := r.currentVersion(ctx, assessment.EntryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toAssessmentDocument(assessment)
	doc.ID = id
	doc.Version = current + 1
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.assessmentsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to append assessment", goerr.V("entryID", assessment.EntryID))
	}

	return doc.toModel(), nil
}

func (r *assessmentRepository) currentVersion(ctx context.Context, entryID int64) (int, error) {
	iter := r.client.Collection(r.assessmentsCollection()).
		Where("entry_id", "==", entryID).
		OrderBy("version", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return 0, nil
	}
	if err != nil {
		return 0, goerr.Wrap(err, "failed to query assessments", goerr.V("entryID", entryID))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return 0, goerr.Wrap(err, "failed to unmarshal assessment")
	}
	return assessmentDoc.Version, nil
}

func (r *assessmentRepository) Get(ctx context.Context, id int64) (*model.ClauseRiskAssessment, error) {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}

	return assessmentDoc.toModel(), nil
}

func (r *assessmentRepository) GetCurrent(ctx context.Context, entryID int64) (*model.ClauseRiskAssessment, error) {
	iter := r.client.Collection(r.assessmentsCollection()).
		Where("entry_id", "==", entryID).
		OrderBy("version", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "no assessment for entry", goerr.V("entryID", entryID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query assessments", goerr.V("entryID", entryID))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment")
	}

	return assessmentDoc.toModel(), nil
}

func (r *assessmentRepository) ListByEntry(ctx context.Context, entryID int64) ([]*model.ClauseRiskAssessment, error) {
	iter := r.client.Collection(r.assessmentsCollection()).
		Where("entry_id", "==", entryID).
		OrderBy("version", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var assessments []*model.ClauseRiskAssessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var assessmentDoc assessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment")
		}
		assessments = append(assessments, assessmentDoc.toModel())
	}

	return assessments, nil
}

func (r *assessmentRepository) UpdateStatus(ctx context.Context, id int64, assessmentStatus types.AssessmentStatus) (*model.ClauseRiskAssessment, error) {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(fmt.Sprintf("%d", id))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var existing assessmentDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}

	existing.Status = assessmentStatus.String()
	existing.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return nil, goerr.Wrap(err, "failed to update assessment status", goerr.V("id", id))
	}

	return existing.toModel(), nil
}
