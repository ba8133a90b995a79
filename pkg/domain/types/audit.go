package types

// EntityType names a durable record type for audit events
type EntityType string

const (
	EntityTypeClause       EntityType = "clause"
	EntityTypeOverlay      EntityType = "overlay"
	EntityTypeSolicitation EntityType = "solicitation"
	EntityTypeClauseEntry  EntityType = "clause_entry"
	EntityTypeAssessment   EntityType = "assessment"
	EntityTypeApproval     EntityType = "approval"
	EntityTypeSnapshot     EntityType = "snapshot"
)

// AuditAction names the state-changing operation an audit event records
type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionStatusChange AuditAction = "STATUS_CHANGE"
	AuditActionAttach       AuditAction = "ATTACH"
	AuditActionAttest       AuditAction = "ATTEST"
	AuditActionAssess       AuditAction = "ASSESS"
	AuditActionApprove      AuditAction = "APPROVE"
	AuditActionReject       AuditAction = "REJECT"
	AuditActionSnapshot     AuditAction = "SNAPSHOT"
)
