package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

type overlayDocument struct {
	ID           int64     `firestore:"id"`
	Family       string    `firestore:"family"`
	Number       string    `firestore:"number"`
	RiskCategory *string   `firestore:"risk_category"`
	RiskScore    *int      `firestore:"risk_score"`
	FlowDown     *string   `firestore:"flow_down"`
	Mitigation   string    `firestore:"mitigation"`
	Tags         []string  `firestore:"tags"`
	Notes        string    `firestore:"notes"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func toOverlayDocument(o *model.ClauseOverlay) *overlayDocument {
	doc := &overlayDocument{
		ID:         o.ID,
		Family:     o.Family.String(),
		Number:     o.Number,
		Mitigation: o.Mitigation,
		Tags:       o.Tags,
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if o.RiskCategory != nil {
		category := o.RiskCategory.String()
		doc.RiskCategory = &category
	}
	if o.RiskScore != nil {
		score := *o.RiskScore
		doc.RiskScore = &score
	}
	if o.FlowDown != nil {
		flowDown := o.FlowDown.String()
		doc.FlowDown = &flowDown
	}
	return doc
}

func (d *overlayDocument) toModel() *model.ClauseOverlay {
	overlay := &model.ClauseOverlay{
		ID:         d.ID,
		Family:     types.RegulationFamily(d.Family),
		Number:     d.Number,
		Mitigation: d.Mitigation,
		Tags:       d.Tags,
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	if d.RiskCategory != nil {
		category := types.RiskCategory(*d.RiskCategory)
		overlay.RiskCategory = &category
	}
	if d.RiskScore != nil {
		score := *d.RiskScore
		overlay.RiskScore = &score
	}
	if d.FlowDown != nil {
		flowDown := types.FlowDown(*d.FlowDown)
		overlay.FlowDown = &flowDown
	}
	return overlay
}

type overlayRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newOverlayRepository(client *firestore.Client) *overlayRepository {
	return &overlayRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *overlayRepository) overlaysCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_overlays"
	}
	return "overlays"
}

func (r *overlayRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *overlayRepository) findDocByKey(ctx context.Context, family types.RegulationFamily, number string) (*overlayDocument, error) {
	iter := r.client.Collection(r.overlaysCollection()).
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
		return nil, goerr.Wrap(err, "failed to query overlay",
			goerr.V("family", family), goerr.V("number", number))
	}

	var overlayDoc overlayDocument
	if err := doc.DataTo(&overlayDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal overlay")
	}
	return &overlayDoc, nil
}

func (r *overlayRepository) Put(ctx context.Context, overlay *model.ClauseOverlay) (*model.ClauseOverlay, error) {
	existing, err := r.findDocByKey(ctx, overlay.Family, overlay.Number)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toOverlayDocument(overlay)
	if existing != nil {
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	} else {
		id, err := nextID(ctx, r.client, r.counterCollection(), "overlay_counter")
		if err != nil {
			return nil, err
		}
		doc.ID = id
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.overlaysCollection()).Doc(fmt.Sprintf("%d", doc.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put overlay",
			goerr.V("family", overlay.Family), goerr.V("number", overlay.Number))
	}

	return doc.toModel(), nil
}

func (r *overlayRepository) GetByNumber(ctx context.Context, family types.RegulationFamily, number string) (*model.ClauseOverlay, error) {
	doc, err := r.findDocByKey(ctx, family, number)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, goerr.Wrap(ErrNotFound, "overlay not found",
			goerr.V("family", family), goerr.V("number", number))
	}
	return doc.toModel(), nil
}

func (r *overlayRepository) List(ctx context.Context) ([]*model.ClauseOverlay, error) {
	iter := r.client.Collection(r.overlaysCollection()).Documents(ctx)
	defer iter.Stop()

	var overlays []*model.ClauseOverlay
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate overlays")
		}

		var overlayDoc overlayDocument
		if err := doc.DataTo(&overlayDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal overlay")
		}
		overlays = append(overlays, overlayDoc.toModel())
	}

	return overlays, nil
}
