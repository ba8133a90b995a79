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

type clauseEntryDocument struct {
	ID             int64     `firestore:"id"`
	SolicitationID int64     `firestore:"solicitation_id"`
	ClauseID       int64     `firestore:"clause_id"`
	Detection      string    `firestore:"detection"`
	Confidence     float64   `firestore:"confidence"`
	FlowDown       string    `firestore:"flow_down"`
	CreatedAt      time.Time `firestore:"created_at"`
}

func toClauseEntryDocument(e *model.SolicitationClauseEntry) *clauseEntryDocument {
	return &clauseEntryDocument{
		ID:             e.ID,
		SolicitationID: e.SolicitationID,
		ClauseID:       e.ClauseID,
		Detection:      e.Detection.String(),
		Confidence:     e.Confidence,
		FlowDown:       e.FlowDown.String(),
		CreatedAt:      e.CreatedAt,
	}
}

func (d *clauseEntryDocument) toModel() *model.SolicitationClauseEntry {
	return &model.SolicitationClauseEntry{
		ID:             d.ID,
		SolicitationID: d.SolicitationID,
		ClauseID:       d.ClauseID,
		Detection:      types.DetectionMethod(d.Detection),
		Confidence:     d.Confidence,
		FlowDown:       types.FlowDown(d.FlowDown),
		CreatedAt:      d.CreatedAt,
	}
}

type clauseEntryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newClauseEntryRepository(client *firestore.Client) *clauseEntryRepository {
	return &clauseEntryRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *clauseEntryRepository) entriesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_clause_entries"
	}
	return "clause_entries"
}

func (r *clauseEntryRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *clauseEntryRepository) CreateIfAbsent(ctx context.Context, entry *model.SolicitationClauseEntry) (*model.SolicitationClauseEntry, bool, error) {
	iter := r.client.Collection(r.entriesCollection()).
		Where("solicitation_id", "==", entry.SolicitationID).
		Where("clause_id", "==", entry.ClauseID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == nil {
		var existing clauseEntryDocument
		if err := doc.DataTo(&existing); err != nil {
			return nil, false, goerr.Wrap(err, "failed to unmarshal clause entry")
		}
		return existing.toModel(), false, nil
	}
	if err != iterator.Done {
		return nil, false, goerr.Wrap(err, "failed to query clause entry",
			goerr.V("solicitationID", entry.SolicitationID), goerr.V("clauseID", entry.ClauseID))
	}

	id, err := nextID(ctx, r.client, r.counterCollection(), "clause_entry_counter")
	if err != nil {
		return nil, false, err
	}

	created := toClauseEntryDocument(entry)
	created.ID = id
	created.CreatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.entriesCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, created); err != nil {
		return nil, false, goerr.Wrap(err, "failed to create clause entry")
	}

	return created.toModel(), true, nil
}

func (r *clauseEntryRepository) Get(ctx context.Context, id int64) (*model.SolicitationClauseEntry, error) {
	docRef := r.client.Collection(r.entriesCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "clause entry not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get clause entry", goerr.V("id", id))
	}

	var entryDoc clauseEntryDocument
	if err := doc.DataTo(&entryDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal clause entry", goerr.V("id", id))
	}

	return entryDoc.toModel(), nil
}

func (r *clauseEntryRepository) ListBySolicitation(ctx context.Context, solicitationID int64) ([]*model.SolicitationClauseEntry, error) {
	iter := r.client.Collection(r.entriesCollection()).
		Where("solicitation_id", "==", solicitationID).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var entries []*model.SolicitationClauseEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate clause entries")
		}

		var entryDoc clauseEntryDocument
		if err := doc.DataTo(&entryDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal clause entry")
		}
		entries = append(entries, entryDoc.toModel())
	}

	return entries, nil
}
