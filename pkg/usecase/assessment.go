package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/service/escalation"
	"github.com/govcon-lab/bidgate/pkg/utils/async"
)

// SubmitAssessment records a new version of a clause risk assessment. The
// percent score, level, and required approval tier are derived, the required
// approval record is created lazily, and the solicitation's aggregate score
// and escalation flags are recomputed. Concurrent submissions against the
// same entry are last-writer-wins: each simply becomes the next version.
func (uc *UseCases) SubmitAssessment(ctx context.Context, entryID int64, scores model.FactorScores, assessor string) (*model.ClauseRiskAssessment, error) {
	if err := scores.Validate(); err != nil {
		return nil, goerr.Wrap(ErrValidationFailed, "invalid factor scores",
			goerr.V(EntryIDKey, entryID), goerr.V("cause", err))
	}

	entry, err := uc.getEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	sol, err := uc.GetSolicitation(ctx, entry.SolicitationID)
	if err != nil {
		return nil, err
	}
	if sol.Status.IsFinalized() {
		return nil, goerr.Wrap(ErrInvalidState, "cannot assess clauses of a finalized solicitation",
			goerr.V(SolicitationIDKey, sol.ID), goerr.V("status", sol.Status))
	}

	percent, level := uc.scorer.Score(scores)
	tier := types.TierForLevel(level)

	assessment, err := uc.repo.Assessment().Append(ctx, &model.ClauseRiskAssessment{
		EntryID:      entryID,
		Scores:       scores,
		Percent:      percent,
		Level:        level,
		Status:       types.AssessmentStatusSubmitted,
		RequiredTier: tier,
		Assessor:     assessor,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append assessment", goerr.V(EntryIDKey, entryID))
	}

	// L4 demands Executive sign-off on top of Quality, not instead of it
	if tier == types.ApprovalTypeExecutive {
		if _, err := uc.repo.Approval().GetOrCreate(ctx, sol.ID, types.ApprovalTypeQuality); err != nil {
			return nil, goerr.Wrap(err, "failed to create quality approval record", goerr.V(SolicitationIDKey, sol.ID))
		}
	}
	if tier.IsValid() {
		if _, err := uc.repo.Approval().GetOrCreate(ctx, sol.ID, tier); err != nil {
			return nil, goerr.Wrap(err, "failed to create approval record",
				goerr.V(SolicitationIDKey, sol.ID), goerr.V("tier", tier))
		}
	}

	escalated, err := uc.refreshSolicitationRisk(ctx, sol)
	if err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeAssessment,
		EntityID:   fmt.Sprintf("%d", assessment.ID),
		Action:     types.AuditActionAssess,
		NewValue:   fmt.Sprintf("%d%% (%s)", percent, level),
		Actor:      assessor,
	})

	if escalated && uc.slackService != nil {
		notifySol := *sol
		notifyAssessment := *assessment
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.slackService.NotifyEscalation(ctx, &notifySol, &notifyAssessment)
		})
	}

	return assessment, nil
}

// ApproveAssessment marks an assessment version as approved
func (uc *UseCases) ApproveAssessment(ctx context.Context, assessmentID int64, actor string) (*model.ClauseRiskAssessment, error) {
	return uc.decideAssessment(ctx, assessmentID, types.AssessmentStatusApproved, types.AuditActionApprove, actor)
}

// RejectAssessment marks an assessment version as rejected
func (uc *UseCases) RejectAssessment(ctx context.Context, assessmentID int64, actor string) (*model.ClauseRiskAssessment, error) {
	return uc.decideAssessment(ctx, assessmentID, types.AssessmentStatusRejected, types.AuditActionReject, actor)
}

func (uc *UseCases) decideAssessment(ctx context.Context, assessmentID int64, status types.AssessmentStatus, action types.AuditAction, actor string) (*model.ClauseRiskAssessment, error) {
	updated, err := uc.repo.Assessment().UpdateStatus(ctx, assessmentID, status)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrAssessmentNotFound, "assessment not found",
				goerr.V(AssessmentIDKey, assessmentID))
		}
		return nil, goerr.Wrap(err, "failed to update assessment status",
			goerr.V(AssessmentIDKey, assessmentID))
	}

	// The decision changes which assessments count toward the derived risk
	// picture, so recompute it just like a submission does
	entry, err := uc.getEntry(ctx, updated.EntryID)
	if err != nil {
		return nil, err
	}
	sol, err := uc.GetSolicitation(ctx, entry.SolicitationID)
	if err != nil {
		return nil, err
	}
	if !sol.Status.IsFinalized() {
		if _, err := uc.refreshSolicitationRisk(ctx, sol); err != nil {
			return nil, err
		}
	}

	uc.recordAudit(ctx, &model.AuditEvent{
		EntityType: types.EntityTypeAssessment,
		EntityID:   fmt.Sprintf("%d", assessmentID),
		Action:     action,
		Field:      "status",
		NewValue:   status.String(),
		Actor:      actor,
	})

	return updated, nil
}

// GetCurrentAssessment returns the highest-version assessment of an entry
func (uc *UseCases) GetCurrentAssessment(ctx context.Context, entryID int64) (*model.ClauseRiskAssessment, error) {
	assessment, err := uc.repo.Assessment().GetCurrent(ctx, entryID)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrAssessmentNotFound, "no assessment for entry",
				goerr.V(EntryIDKey, entryID))
		}
		return nil, goerr.Wrap(err, "failed to get current assessment", goerr.V(EntryIDKey, entryID))
	}
	return assessment, nil
}

// ListAssessments returns every version of an entry's assessments
func (uc *UseCases) ListAssessments(ctx context.Context, entryID int64) ([]*model.ClauseRiskAssessment, error) {
	assessments, err := uc.repo.Assessment().ListByEntry(ctx, entryID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments", goerr.V(EntryIDKey, entryID))
	}
	return assessments, nil
}

func (uc *UseCases) getEntry(ctx context.Context, entryID int64) (*model.SolicitationClauseEntry, error) {
	entry, err := uc.repo.ClauseEntry().Get(ctx, entryID)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, goerr.Wrap(ErrEntryNotFound, "clause entry not found", goerr.V(EntryIDKey, entryID))
		}
		return nil, goerr.Wrap(err, "failed to get clause entry", goerr.V(EntryIDKey, entryID))
	}
	return entry, nil
}

// scoredEntries builds the escalation evaluator's view of the solicitation:
// each attached clause with its effective category and current assessment
// level
func (uc *UseCases) scoredEntries(ctx context.Context, solicitationID int64) ([]escalation.ScoredEntry, []int, error) {
	entries, err := uc.repo.ClauseEntry().ListBySolicitation(ctx, solicitationID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list clause entries", goerr.V(SolicitationIDKey, solicitationID))
	}

	scored := make([]escalation.ScoredEntry, 0, len(entries))
	var percents []int
	for _, entry := range entries {
		clause, err := uc.GetClause(ctx, entry.ClauseID)
		if err != nil {
			return nil, nil, err
		}
		effective, err := uc.ResolveEffectiveClause(ctx, clause.Family, clause.Number)
		if err != nil {
			return nil, nil, err
		}

		se := escalation.ScoredEntry{
			ClauseNumber: clause.Number,
			Category:     effective.RiskCategory,
		}
		if current, err := uc.repo.Assessment().GetCurrent(ctx, entry.ID); err == nil {
			// a rejected current version must be redone, so it contributes
			// nothing to the derived risk picture
			if current.Status != types.AssessmentStatusRejected {
				se.Level = current.Level
				se.Assessed = true
				percents = append(percents, current.Percent)
			}
		} else if !isRepoNotFound(err) {
			return nil, nil, goerr.Wrap(err, "failed to get current assessment", goerr.V(EntryIDKey, entry.ID))
		}
		scored = append(scored, se)
	}

	return scored, percents, nil
}

// refreshSolicitationRisk recomputes the solicitation's aggregate score and
// escalation flags from the current assessments and advances the review
// lifecycle. It reports whether an escalation signal fired that was not
// already set.
func (uc *UseCases) refreshSolicitationRisk(ctx context.Context, sol *model.Solicitation) (bool, error) {
	scored, percents, err := uc.scoredEntries(ctx, sol.ID)
	if err != nil {
		return false, err
	}

	flags := escalation.Evaluate(scored, escalation.Meta{ContractType: sol.ContractType}, uc.scoringConfig)
	overall, overallLevel := uc.scorer.Aggregate(percents)

	escalated := (flags.EscalationRequired && !sol.EscalationRequired) ||
		(flags.ExecutiveRequired && sol.OverallLevel != types.RiskLevelL4 && overallLevel == types.RiskLevelL4)

	sol.OverallScore = overall
	sol.OverallLevel = overallLevel
	sol.CyberReviewRequired = flags.CyberReviewRequired
	sol.FinancialReviewRequired = flags.FinancialReviewRequired
	sol.EscalationRequired = flags.EscalationRequired
	sol.Status = uc.nextReviewStatus(sol.Status, scored, flags)

	updated, err := uc.repo.Solicitation().Update(ctx, sol)
	if err != nil {
		return false, goerr.Wrap(err, "failed to update solicitation risk state", goerr.V(SolicitationIDKey, sol.ID))
	}
	*sol = *updated

	return escalated, nil
}

// nextReviewStatus advances the review lifecycle as assessments arrive:
// first assessment starts the review, full coverage completes it, and a
// required approval tier parks the solicitation in APPROVAL_REQUIRED.
func (uc *UseCases) nextReviewStatus(current types.SolicitationStatus, scored []escalation.ScoredEntry, flags escalation.Flags) types.SolicitationStatus {
	anyAssessed := false
	allAssessed := len(scored) > 0
	for _, se := range scored {
		if se.Assessed {
			anyAssessed = true
		} else {
			allAssessed = false
		}
	}

	status := current
	if status == types.SolicitationStatusExtractionComplete && anyAssessed {
		status = types.SolicitationStatusReviewInProgress
	}
	if status == types.SolicitationStatusReviewInProgress && allAssessed {
		status = types.SolicitationStatusReviewComplete
	}
	if status == types.SolicitationStatusReviewComplete && (flags.QualityRequired || flags.ExecutiveRequired) {
		status = types.SolicitationStatusApprovalRequired
	}
	return status
}
