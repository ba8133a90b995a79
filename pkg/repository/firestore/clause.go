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

type clauseDocument struct {
	ID               int64     `firestore:"id"`
	Family           string    `firestore:"family"`
	Number           string    `firestore:"number"`
	Title            string    `firestore:"title"`
	FullText         string    `firestore:"full_text"`
	Part             string    `firestore:"part"`
	Subpart          string    `firestore:"subpart"`
	BaseRiskCategory string    `firestore:"base_risk_category"`
	BaseRiskScore    int       `firestore:"base_risk_score"`
	BaseFlowDown     string    `firestore:"base_flow_down"`
	CreatedAt        time.Time `firestore:"created_at"`
	UpdatedAt        time.Time `firestore:"updated_at"`
}

func toClauseDocument(c *model.RegulatoryClause) *clauseDocument {
	return &clauseDocument{
		ID:               c.ID,
		Family:           c.Family.String(),
		Number:           c.Number,
		Title:            c.Title,
		FullText:         c.FullText,
		Part:             c.Part,
		Subpart:          c.Subpart,
		BaseRiskCategory: c.BaseRiskCategory.String(),
		BaseRiskScore:    c.BaseRiskScore,
		BaseFlowDown:     c.BaseFlowDown.String(),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (d *clauseDocument) toModel() *model.RegulatoryClause {
	return &model.RegulatoryClause{
		ID:               d.ID,
		Family:           types.RegulationFamily(d.Family),
		Number:           d.Number,
		Title:            d.Title,
		FullText:         d.FullText,
		Part:             d.Part,
		Subpart:          d.Subpart,
		BaseRiskCategory: types.RiskCategory(d.BaseRiskCategory),
		BaseRiskScore:    d.BaseRiskScore,
		BaseFlowDown:     types.FlowDown(d.BaseFlowDown),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type clauseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newClauseRepository(client *firestore.Client) *clauseRepository {
	return &clauseRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *clauseRepository) clausesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_clauses"
	}
	return "clauses"
}

func (r *clauseRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *clauseRepository) findDocByKey(ctx context.Context, family types.RegulationFamily, number string) (*clauseDocument, error) {
	iter := r.client.Collection(r.clausesCollection()).
		Where("family", "==", family.String()).
		Where("number", "==", number).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query clause",
			goerr.V("family", family), goerr.V("number", number))
	}

	var clauseDoc clauseDocument
	if err := doc.DataTo(&clauseDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal clause")
	}
	return &clauseDoc, nil
}

func (r *clauseRepository) Upsert(ctx context.Context, clause *model.RegulatoryClause) (*model.RegulatoryClause, error) {
	existing, err := r.findDocByKey(ctx, clause.Family, clause.Number)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toClauseDocument(clause)
	if existing != nil {
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	} else {
		id, err := nextID(ctx, r.client, r.counterCollection(), "clause_counter")
		if err != nil {
			return nil, err
		}
		doc.ID = id
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.clausesCollection()).Doc(fmt.Sprintf("%d", doc.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert clause",
			goerr.V("family", clause.Family), goerr.V("number", clause.Number))
	}

	return doc.toModel(), nil
}

func (r *clauseRepository) Get(ctx context.Context, id int64) (*model.RegulatoryClause, error) {
	docRef := r.client.Collection(r.clausesCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "clause not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get clause", goerr.V("id", id))
	}

	var clauseDoc clauseDocument
	if err := doc.DataTo(&clauseDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal clause", goerr.V("id", id))
	}

	return clauseDoc.toModel(), nil
}

func (r *clauseRepository) GetByNumber(ctx context.Context, family types.RegulationFamily, number string) (*model.RegulatoryClause, error) {
	doc, err := r.findDocByKey(ctx, family, number)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, goerr.Wrap(ErrNotFound, "clause not found",
			goerr.V("family", family), goerr.V("number", number))
	}
	return doc.toModel(), nil
}

func (r *clauseRepository) FindByNumber(ctx context.Context, number string) (*model.RegulatoryClause, error) {
	iter := r.client.Collection(r.clausesCollection()).
		Where("number", "==", number).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "clause not found", goerr.V("number", number))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query clause", goerr.V("number", number))
	}

	var clauseDoc clauseDocument
	if err := doc.DataTo(&clauseDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal clause", goerr.V("number", number))
	}
	return clauseDoc.toModel(), nil
}

func (r *clauseRepository) List(ctx context.Context) ([]*model.RegulatoryClause, error) {
	iter := r.client.Collection(r.clausesCollection()).Documents(ctx)
	defer iter.Stop()

	var clauses []*model.RegulatoryClause
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate clauses")
		}

		var clauseDoc clauseDocument
		if err := doc.DataTo(&clauseDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal clause")
		}
		clauses = append(clauses, clauseDoc.toModel())
	}

	return clauses, nil
}
