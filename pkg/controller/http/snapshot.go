package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

func (s *Server) generateSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	snapshot, err := s.uc.GenerateSnapshot(ctx, id, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, snapshot)
}

func (s *Server) getLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	snapshot, err := s.uc.GetLatestSnapshot(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, snapshot)
}

func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	snapshots, err := s.uc.ListSnapshots(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, snapshots)
}

func (s *Server) listAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entityType := types.EntityType(chi.URLParam(r, "entityType"))
	entityID := chi.URLParam(r, "entityID")

	events, err := s.uc.ListAuditTrail(ctx, entityType, entityID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, events)
}

func (s *Server) computeMaturityIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.uc.ComputeMaturityIndex(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, result)
}
