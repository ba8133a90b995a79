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

type auditDocument struct {
	ID         string    `firestore:"id"`
	EntityType string    `firestore:"entity_type"`
	EntityID   string    `firestore:"entity_id"`
	Action     string    `firestore:"action"`
	Field      string    `firestore:"field"`
	OldValue   string    `firestore:"old_value"`
	NewValue   string    `firestore:"new_value"`
	Actor      string    `firestore:"actor"`
	CreatedAt  time.Time `firestore:"created_at"`
}

func toAuditDocument(e *model.AuditEvent) *auditDocument {
	return &auditDocument{
		ID:         string(e.ID),
		EntityType: string(e.EntityType),
		EntityID:   e.EntityID,
		Action:     string(e.Action),
		Field:      e.Field,
		OldValue:   e.OldValue,
		NewValue:   e.NewValue,
		Actor:      e.Actor,
		CreatedAt:  e.CreatedAt,
	}
}

func (d *auditDocument) toModel() *model.AuditEvent {
	return &model.AuditEvent{
		ID:         model.AuditID(d.ID),
		EntityType: types.EntityType(d.EntityType),
		EntityID:   d.EntityID,
		Action:     types.AuditAction(d.Action),
		Field:      d.Field,
		OldValue:   d.OldValue,
		NewValue:   d.NewValue,
		Actor:      d.Actor,
		CreatedAt:  d.CreatedAt,
	}
}

type auditRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAuditRepository(client *firestore.Client) *auditRepository {
	return &auditRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *auditRepository) auditCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_audit_events"
	}
	return "audit_events"
}

func (r *auditRepository) Append(ctx context.Context, event *model.AuditEvent) (*model.AuditEvent, error) {
	doc := toAuditDocument(event)
	if doc.ID == "" {
		doc.ID = string(model.NewAuditID())
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	docRef := r.client.Collection(r.auditCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to append audit event",
			goerr.V("entityType", event.EntityType), goerr.V("entityID", event.EntityID))
	}

	return doc.toModel(), nil
}

func (r *auditRepository) ListByEntity(ctx context.Context, entityType types.EntityType, entityID string) ([]*model.AuditEvent, error) {
	iter := r.client.Collection(r.auditCollection()).
		Where("entity_type", "==", string(entityType)).
		Where("entity_id", "==", entityID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var events []*model.AuditEvent
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate audit events")
		}

		var auditDoc auditDocument
		if err := doc.DataTo(&auditDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal audit event")
		}
		events = append(events, auditDoc.toModel())
	}

	return events, nil
}
