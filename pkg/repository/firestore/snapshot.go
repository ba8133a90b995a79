package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type snapshotClauseDocument struct {
	EntryID  int64  `firestore:"entry_id"`
	ClauseID int64  `firestore:"clause_id"`
	Number   string `firestore:"number"`
	Title    string `firestore:"title"`
	Percent  int    `firestore:"percent"`
	Level    string `firestore:"level"`
	Assessed bool   `firestore:"assessed"`
}

type snapshotDocument struct {
	ID             string                   `firestore:"id"`
	SolicitationID int64                    `firestore:"solicitation_id"`
	Clauses        []snapshotClauseDocument `firestore:"clauses"`
	OverallScore   int                      `firestore:"overall_score"`
	OverallLevel   string                   `firestore:"overall_level"`
	GeneratedAt    time.Time                `firestore:"generated_at"`
}

func toSnapshotDocument(s *model.RiskLogSnapshot) *snapshotDocument {
	doc := &snapshotDocument{
		ID:             string(s.ID),
		SolicitationID: s.SolicitationID,
		OverallScore:   s.OverallScore,
		OverallLevel:   s.OverallLevel.String(),
		GeneratedAt:    s.GeneratedAt,
	}
	for _, c := range s.Clauses {
		doc.Clauses = append(doc.Clauses, snapshotClauseDocument{
			EntryID:  c.EntryID,
			ClauseID: c.ClauseID,
			Number:   c.Number,
			Title:    c.Title,
			Percent:  c.Percent,
			Level:    c.Level.String(),
			Assessed: c.Assessed,
		})
	}
	return doc
}

func (d *snapshotDocument) toModel() *model.RiskLogSnapshot {
	snapshot := &model.RiskLogSnapshot{
		ID:             model.SnapshotID(d.ID),
		SolicitationID: d.SolicitationID,
		OverallScore:   d.OverallScore,
		OverallLevel:   types.RiskLevel(d.OverallLevel),
		GeneratedAt:    d.GeneratedAt,
	}
	for _, c := range d.Clauses {
		snapshot.Clauses = append(snapshot.Clauses, model.SnapshotClause{
			EntryID:  c.EntryID,
			ClauseID: c.ClauseID,
			Number:   c.Number,
			Title:    c.Title,
			Percent:  c.Percent,
			Level:    types.RiskLevel(c.Level),
			Assessed: c.Assessed,
		})
	}
	return snapshot
}

type snapshotRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSnapshotRepository(client *firestore.Client) *snapshotRepository {
	return &snapshotRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *snapshotRepository) snapshotsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_snapshots"
	}
	return "snapshots"
}

func (r *snapshotRepository) Append(ctx context.Context, snapshot *model.RiskLogSnapshot) (*model.RiskLogSnapshot, error) {
	doc := toSnapshotDocument(snapshot)
	if doc.ID == "" {
		doc.ID = string(model.NewSnapshotID())
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now().UTC()
	}

	docRef := r.client.Collection(r.snapshotsCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to append snapshot",
			goerr.V("solicitationID", snapshot.SolicitationID))
	}

	return doc.toModel(), nil
}

func (r *snapshotRepository) Latest(ctx context.Context, solicitationID int64) (*model.RiskLogSnapshot, error) {
	iter := r.client.Collection(r.snapshotsCollection()).
		Where("solicitation_id", "==", solicitationID).
		OrderBy("generated_at", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "no snapshot for solicitation",
			goerr.V("solicitationID", solicitationID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query snapshots", goerr.V("solicitationID", solicitationID))
	}

	var snapshotDoc snapshotDocument
	if err := doc.DataTo(&snapshotDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal snapshot")
	}

	return snapshotDoc.toModel(), nil
}

func (r *snapshotRepository) ListBySolicitation(ctx context.Context, solicitationID int64) ([]*model.RiskLogSnapshot, error) {
	iter := r.client.Collection(r.snapshotsCollection()).
		Where("solicitation_id", "==", solicitationID).
		OrderBy("generated_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var snapshots []*model.RiskLogSnapshot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate snapshots")
		}

		var snapshotDoc snapshotDocument
		if err := doc.DataTo(&snapshotDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal snapshot")
		}
		snapshots = append(snapshots, snapshotDoc.toModel())
	}

	return snapshots, nil
}
