package http

import (
	"net/http"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

func (s *Server) ingestClause(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var clause model.RegulatoryClause
	if err := decodeJSON(r, &clause); err != nil {
		handleError(ctx, w, err)
		return
	}

	created, err := s.uc.IngestClause(ctx, &clause, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, created)
}

func (s *Server) listClauses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clauses, err := s.uc.ListClauses(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, clauses)
}

func (s *Server) getClause(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "clauseID")
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	clause, err := s.uc.GetClause(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, clause)
}

// resolveEffectiveClause serves the overlay-merged view of a clause. The
// family query parameter is optional; without it the number is resolved
// across all families.
func (s *Server) resolveEffectiveClause(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	family := types.RegulationFamily(r.URL.Query().Get("family"))
	number := r.URL.Query().Get("number")

	effective, err := s.uc.ResolveEffectiveClause(ctx, family, number)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, effective)
}

func (s *Server) putOverlay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var overlay model.ClauseOverlay
	if err := decodeJSON(r, &overlay); err != nil {
		handleError(ctx, w, err)
		return
	}

	created, err := s.uc.PutOverlay(ctx, &overlay, actor(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, created)
}

func (s *Server) getOverlay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	family := types.RegulationFamily(r.URL.Query().Get("family"))
	number := r.URL.Query().Get("number")

	overlay, err := s.uc.GetOverlay(ctx, family, number)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, overlay)
}

func (s *Server) listOverlays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overlays, err := s.uc.ListOverlays(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, overlays)
}
