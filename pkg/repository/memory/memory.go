package memory

import (
	"github.com/govcon-lab/bidgate/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend for development and tests
type Memory struct {
	clause       *clauseRepository
	overlay      *overlayRepository
	solicitation *solicitationRepository
	clauseEntry  *clauseEntryRepository
	assessment   *assessmentRepository
	approval     *approvalRepository
	snapshot     *snapshotRepository
	audit        *auditRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		clause:       newClauseRepository(),
		overlay:      newOverlayRepository(),
		solicitation: newSolicitationRepository(),
		clauseEntry:  newClauseEntryRepository(),
		assessment:   newAssessmentRepository(),
		approval:     newApprovalRepository(),
		snapshot:     newSnapshotRepository(),
		audit:        newAuditRepository(),
	}
}

func (m *Memory) Clause() interfaces.ClauseRepository {
	return m.clause
}

func (m *Memory) Overlay() interfaces.OverlayRepository {
	return m.overlay
}

func (m *Memory) Solicitation() interfaces.SolicitationRepository {
	return m.solicitation
}

func (m *Memory) ClauseEntry() interfaces.ClauseEntryRepository {
	return m.clauseEntry
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Approval() interfaces.ApprovalRepository {
	return m.approval
}

func (m *Memory) Snapshot() interfaces.SnapshotRepository {
	return m.snapshot
}

func (m *Memory) Audit() interfaces.AuditRepository {
	return m.audit
}

func (m *Memory) Close() error {
	return nil
}
