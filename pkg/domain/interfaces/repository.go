package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Clause() ClauseRepository
	Overlay() OverlayRepository
	Solicitation() SolicitationRepository
	ClauseEntry() ClauseEntryRepository
	Assessment() AssessmentRepository
	Approval() ApprovalRepository
	Snapshot() SnapshotRepository
	Audit() AuditRepository

	Close() error
}
