package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/interfaces"
)

type Firestore struct {
	client       *firestore.Client
	clause       *clauseRepository
	overlay      *overlayRepository
	solicitation *solicitationRepository
	clauseEntry  *clauseEntryRepository
	assessment   *assessmentRepository
	approval     *approvalRepository
	snapshot     *snapshotRepository
	audit        *auditRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.clause.collectionPrefix = prefix
		f.overlay.collectionPrefix = prefix
		f.solicitation.collectionPrefix = prefix
		f.clauseEntry.collectionPrefix = prefix
		f.assessment.collectionPrefix = prefix
		f.approval.collectionPrefix = prefix
		f.snapshot.collectionPrefix = prefix
		f.audit.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:       client,
		clause:       newClauseRepository(client),
		overlay:      newOverlayRepository(client),
		solicitation: newSolicitationRepository(client),
		clauseEntry:  newClauseEntryRepository(client),
		assessment:   newAssessmentRepository(client),
		approval:     newApprovalRepository(client),
		snapshot:     newSnapshotRepository(client),
		audit:        newAuditRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Clause() interfaces.ClauseRepository {
	return f.clause
}

func (f *Firestore) Overlay() interfaces.OverlayRepository {
	return f.overlay
}

func (f *Firestore) Solicitation() interfaces.SolicitationRepository {
	return f.solicitation
}

func (f *Firestore) ClauseEntry() interfaces.ClauseEntryRepository {
	return f.clauseEntry
}

func (f *Firestore) Assessment() interfaces.AssessmentRepository {
	return f.assessment
}

func (f *Firestore) Approval() interfaces.ApprovalRepository {
	return f.approval
}

func (f *Firestore) Snapshot() interfaces.SnapshotRepository {
	return f.snapshot
}

func (f *Firestore) Audit() interfaces.AuditRepository {
	return f.audit
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
