package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/usecase"
)

func (s *Server) createSolicitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var sol model.Solicitation
	if err := decodeJSON(r, &sol); err != nil {
		handleError(ctx, w, err)
		return
	}

	created, err := s.uc.CreateSolicitation(ctx, &sol, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, created)
}

func (s *Server) listSolicitations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sols, err := s.uc.ListSolicitations(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, sols)
}

func (s *Server) getSolicitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	sol, err := s.uc.GetSolicitation(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, sol)
}

func (s *Server) updateSolicitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var update model.SolicitationUpdate
	if err := decodeJSON(r, &update); err != nil {
		handleError(ctx, w, err)
		return
	}

	updated, err := s.uc.UpdateSolicitation(ctx, id, &update, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, updated)
}

func (s *Server) submitForExtraction(w http.ResponseWriter, r *http.Request) {
	s.lifecycleHandler(w, r, s.uc.SubmitForExtraction)
}

func (s *Server) rejectNoBid(w http.ResponseWriter, r *http.Request) {
	s.lifecycleHandler(w, r, s.uc.RejectNoBid)
}

func (s *Server) archiveSolicitation(w http.ResponseWriter, r *http.Request) {
	s.lifecycleHandler(w, r, s.uc.ArchiveSolicitation)
}

func (s *Server) lifecycleHandler(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64, actor string) (*model.Solicitation, error)) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	updated, err := op(ctx, id, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, updated)
}

// approveToBid runs the bid gate. A blocked gate is not an internal failure:
// it responds 409 with the full blocker list so the client sees every unmet
// precondition at once.
func (s *Server) approveToBid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "solicitationID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	type gateResponse struct {
		Solicitation *model.Solicitation `json:"solicitation"`
		Blockers     []model.Blocker     `json:"blockers,omitempty"`
	}

	sol, blockers, err := s.uc.ApproveToBid(ctx, id, actor(r))
	if err != nil {
		if errors.Is(err, usecase.ErrPreconditionBlocked) {
			respondJSON(ctx, w, http.StatusConflict, gateResponse{
				Solicitation: sol,
				Blockers:     blockers,
			})
			return
		}
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, gateResponse{Solicitation: sol})
}
