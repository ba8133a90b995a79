package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
	"github.com/govcon-lab/bidgate/pkg/usecase"
)

func (s *Server) extractClauses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req struct {
		Candidates []struct {
			Number     string  `json:"number"`
			Confidence float64 `json:"confidence"`
		} `json:"candidates"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	candidates := make([]usecase.ClauseCandidate, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		candidates = append(candidates, usecase.ClauseCandidate{
			Number:     c.Number,
			Confidence: c.Confidence,
		})
	}

	result, err := s.uc.ExtractClauses(ctx, id, candidates, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, struct {
		Entries []*model.SolicitationClauseEntry `json:"entries"`
		Dropped int                              `json:"dropped"`
	}{
		Entries: result.Entries,
		Dropped: result.Dropped,
	})
}

func (s *Server) addClauseManually(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req struct {
		Family types.RegulationFamily `json:"family"`
		Number string                 `json:"number"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	entry, err := s.uc.AddClauseManually(ctx, id, req.Family, req.Number, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, entry)
}

func (s *Server) attestNoClauses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	updated, err := s.uc.AttestNoClauses(ctx, id, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, updated)
}

func (s *Server) markExtractionComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	updated, err := s.uc.MarkExtractionComplete(ctx, id, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, updated)
}

func (s *Server) listClauseEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	entries, err := s.uc.ListClauseEntries(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, entries)
}

func (s *Server) submitAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entryID, err := pathID(r, "entryID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var scores model.FactorScores
	if err := decodeJSON(r, &scores); err != nil {
		handleError(ctx, w, err)
		return
	}

	assessment, err := s.uc.SubmitAssessment(ctx, entryID, scores, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, assessment)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entryID, err := pathID(r, "entryID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	assessments, err := s.uc.ListAssessments(ctx, entryID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, assessments)
}

func (s *Server) getCurrentAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entryID, err := pathID(r, "entryID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	assessment, err := s.uc.GetCurrentAssessment(ctx, entryID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, assessment)
}

func (s *Server) approveAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "assessmentID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	assessment, err := s.uc.ApproveAssessment(ctx, id, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, assessment)
}

func (s *Server) rejectAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "assessmentID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	assessment, err := s.uc.RejectAssessment(ctx, id, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, assessment)
}

func (s *Server) listApprovals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	approvals, err := s.uc.ListApprovals(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, approvals)
}

func (s *Server) recordApprovalDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	tier := types.ApprovalType(chi.URLParam(r, "tier"))

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	approval, err := s.uc.RecordApprovalDecision(ctx, id, tier, req.Approve, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, approval)
}
