package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/govcon-lab/bidgate/pkg/usecase"
	"github.com/govcon-lab/bidgate/pkg/utils/errutil"
	"github.com/govcon-lab/bidgate/pkg/utils/logging"
	"github.com/govcon-lab/bidgate/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/clauses", func(r chi.Router) {
			r.Post("/", s.ingestClause)
			r.Get("/", s.listClauses)
			r.Get("/effective", s.resolveEffectiveClause)
			r.Get("/{clauseID}", s.getClause)
		})

		r.Route("/overlays", func(r chi.Router) {
			r.Put("/", s.putOverlay)
			r.Get("/", s.listOverlays)
			r.Get("/find", s.getOverlay)
		})

		r.Route("/solicitations", func(r chi.Router) {
			r.Post("/", s.createSolicitation)
			r.Get("/", s.listSolicitations)

			r.Route("/{solicitationID}", func(r chi.Router) {
				r.Get("/", s.getSolicitation)
				r.Patch("/", s.updateSolicitation)
				r.Post("/submit", s.submitForExtraction)
				r.Post("/extract", s.extractClauses)
				r.Post("/attest-no-clauses", s.attestNoClauses)
				r.Post("/complete-extraction", s.markExtractionComplete)
				r.Post("/approve-to-bid", s.approveToBid)
				r.Post("/reject", s.rejectNoBid)
				r.Post("/archive", s.archiveSolicitation)

				r.Get("/clauses", s.listClauseEntries)
				r.Post("/clauses", s.addClauseManually)

				r.Get("/approvals", s.listApprovals)
				r.Post("/approvals/{tier}", s.recordApprovalDecision)

				r.Get("/snapshots", s.listSnapshots)
				r.Post("/snapshots", s.generateSnapshot)
				r.Get("/snapshots/latest", s.getLatestSnapshot)
			})
		})

		r.Route("/entries/{entryID}/assessments", func(r chi.Router) {
			r.Post("/", s.submitAssessment)
			r.Get("/", s.listAssessments)
			r.Get("/current", s.getCurrentAssessment)
		})

		r.Route("/assessments/{assessmentID}", func(r chi.Router) {
			r.Post("/approve", s.approveAssessment)
			r.Post("/reject", s.rejectAssessment)
		})

		r.Get("/audit/{entityType}/{entityID}", s.listAuditTrail)
		r.Get("/maturity", s.computeMaturityIndex)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// actor identifies the requesting user for audit events. The service sits
// behind the organization's gateway, which sets the header after
// authentication.
func actor(r *http.Request) string {
	if v := r.Header.Get("X-Actor"); v != "" {
		return v
	}
	return "api"
}

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, data)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(usecase.ErrValidationFailed, "invalid ID in path",
			goerr.V("param", name), goerr.V("value", raw))
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	defer safe.Close(r.Context(), r.Body)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrValidationFailed, "invalid request body", goerr.V("cause", err.Error()))
	}
	return nil
}

// handleError maps use case sentinel errors onto HTTP status codes
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrValidationFailed):
		statusCode = http.StatusBadRequest
	case errors.Is(err, usecase.ErrClauseNotFound),
		errors.Is(err, usecase.ErrOverlayNotFound),
		errors.Is(err, usecase.ErrSolicitationNotFound),
		errors.Is(err, usecase.ErrEntryNotFound),
		errors.Is(err, usecase.ErrAssessmentNotFound),
		errors.Is(err, usecase.ErrApprovalNotFound),
		errors.Is(err, usecase.ErrSnapshotNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidState),
		errors.Is(err, usecase.ErrPreconditionBlocked):
		statusCode = http.StatusConflict
	}
	errutil.HandleHTTP(ctx, w, err, statusCode)
}
