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

type solicitationDocument struct {
	ID               int64     `firestore:"id"`
	Number           string    `firestore:"number"`
	Title            string    `firestore:"title"`
	Agency           string    `firestore:"agency"`
	ContractType     string    `firestore:"contract_type"`
	AnticipatedValue int64     `firestore:"anticipated_value"`
	DueDate          time.Time `firestore:"due_date"`
	Status           string    `firestore:"status"`
	Owner            string    `firestore:"owner"`
	Revision         int64     `firestore:"revision"`

	OverallScore            int    `firestore:"overall_score"`
	OverallLevel            string `firestore:"overall_level"`
	CyberReviewRequired     bool   `firestore:"cyber_review_required"`
	FinancialReviewRequired bool   `firestore:"financial_review_required"`
	EscalationRequired      bool   `firestore:"escalation_required"`

	NoClausesAttested bool `firestore:"no_clauses_attested"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toSolicitationDocument(s *model.Solicitation) *solicitationDocument {
	return &solicitationDocument{
		ID:                      s.ID,
		Number:                  s.Number,
		Title:                   s.Title,
		Agency:                  s.Agency,
		ContractType:            s.ContractType.String(),
		AnticipatedValue:        s.AnticipatedValue,
		DueDate:                 s.DueDate,
		Status:                  s.Status.String(),
		Owner:                   s.Owner,
		Revision:                s.Revision,
		OverallScore:            s.OverallScore,
		OverallLevel:            s.OverallLevel.String(),
		CyberReviewRequired:     s.CyberReviewRequired,
		FinancialReviewRequired: s.FinancialReviewRequired,
		EscalationRequired:      s.EscalationRequired,
		NoClausesAttested:       s.NoClausesAttested,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

func (d *solicitationDocument) toModel() *model.Solicitation {
	return &model.Solicitation{
		ID:                      d.ID,
		Number:                  d.Number,
		Title:                   d.Title,
		Agency:                  d.Agency,
		ContractType:            types.ContractType(d.ContractType),
		AnticipatedValue:        d.AnticipatedValue,
		DueDate:                 d.DueDate,
		Status:                  types.SolicitationStatus(d.Status),
		Owner:                   d.Owner,
		Revision:                d.Revision,
		OverallScore:            d.OverallScore,
		OverallLevel:            types.RiskLevel(d.OverallLevel),
		CyberReviewRequired:     d.CyberReviewRequired,
		FinancialReviewRequired: d.FinancialReviewRequired,
		EscalationRequired:      d.EscalationRequired,
		NoClausesAttested:       d.NoClausesAttested,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
}

type solicitationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSolicitationRepository(client *firestore.Client) *solicitationRepository {
	return &solicitationRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *solicitationRepository) solicitationsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_solicitations"
	}
	return "solicitations"
}

func (r *solicitationRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *solicitationRepository) Create(ctx context.Context, sol *model.Solicitation) (*model.Solicitation, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "solicitation_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toSolicitationDocument(sol)
	doc.ID = id
	doc.Status = sol.Status.Normalize().String()
	doc.Revision = 1
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.solicitationsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create solicitation")
	}

	return doc.toModel(), nil
}

func (r *solicitationRepository) Get(ctx context.Context, id int64) (*model.Solicitation, error) {
	docRef := r.client.Collection(r.solicitationsCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "solicitation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get solicitation", goerr.V("id", id))
	}

	var solDoc solicitationDocument
	if err := doc.DataTo(&solDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal solicitation", goerr.V("id", id))
	}

	return solDoc.toModel(), nil
}

func (r *solicitationRepository) List(ctx context.Context) ([]*model.Solicitation, error) {
	iter := r.client.Collection(r.solicitationsCollection()).Documents(ctx)
	defer iter.Stop()

	var sols []*model.Solicitation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate solicitations")
		}

		var solDoc solicitationDocument
		if err := doc.DataTo(&solDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal solicitation")
		}
		sols = append(sols, solDoc.toModel())
	}

	return sols, nil
}

// Update rewrites the document inside a transaction so the revision bump is
// a true read-modify-write even under concurrent updates.
func (r *solicitationRepository) Update(ctx context.Context, sol *model.Solicitation) (*model.Solicitation, error) {
	docRef := r.client.Collection(r.solicitationsCollection()).Doc(fmt.Sprintf("%d", sol.ID))

	var result solicitationDocument
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "solicitation not found", goerr.V("id", sol.ID))
			}
			return goerr.Wrap(err, "failed to get solicitation", goerr.V("id", sol.ID))
		}

		var existing solicitationDocument
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal solicitation", goerr.V("id", sol.ID))
		}

		updated := toSolicitationDocument(sol)
		updated.ID = existing.ID
		updated.Revision = existing.Revision + 1
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		result = *updated

		return tx.Set(docRef, updated)
	})
	if err != nil {
		return nil, err
	}

	return result.toModel(), nil
}

// UpdateStatus runs the compare-and-swap inside a transaction so the
// status/revision check and the write are one atomic unit.
func (r *solicitationRepository) UpdateStatus(ctx context.Context, id int64, from, to types.SolicitationStatus, revision int64) (*model.Solicitation, error) {
	docRef := r.client.Collection(r.solicitationsCollection()).Doc(fmt.Sprintf("%d", id))

	var result solicitationDocument
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "solicitation not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get solicitation", goerr.V("id", id))
		}

		var existing solicitationDocument
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal solicitation", goerr.V("id", id))
		}

		if existing.Status != from.String() {
			return goerr.Wrap(ErrConflict, "solicitation status changed concurrently",
				goerr.V("id", id), goerr.V("expected", from), goerr.V("actual", existing.Status))
		}
		if existing.Revision != revision {
			return goerr.Wrap(ErrConflict, "solicitation changed concurrently",
				goerr.V("id", id), goerr.V("expected", revision), goerr.V("actual", existing.Revision))
		}

		existing.Status = to.String()
		existing.Revision++
		existing.UpdatedAt = time.Now().UTC()
		result = existing

		return tx.Set(docRef, &existing)
	})
	if err != nil {
		return nil, err
	}

	return result.toModel(), nil
}
