package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/govcon-lab/bidgate/pkg/controller/http"
	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/repository/memory"
	"github.com/govcon-lab/bidgate/pkg/usecase"
)

func newTestServer() *httpctrl.Server {
	return httpctrl.New(usecase.New(memory.New()))
}

func doJSON(t *testing.T, srv *httpctrl.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&reqBody).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "test-user")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
}

func TestSolicitationLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, http.MethodPost, "/api/solicitations", map[string]any{
		"number": "W15P7T-26-R-0021",
		"title":  "Tactical Network Modernization",
	})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)

	var sol model.Solicitation
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sol)).Required()
	gt.Value(t, sol.Status.String()).Equal("DRAFT")

	rec = doJSON(t, srv, http.MethodPost, "/api/solicitations/1/submit", nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodGet, "/api/solicitations/1", nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sol)).Required()
	gt.Value(t, sol.Status.String()).Equal("CLAUSE_EXTRACTION_PENDING")
}

func TestCreateSolicitationValidationOverHTTP(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, http.MethodPost, "/api/solicitations", map[string]any{
		"title": "No Number",
	})
	gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestGetSolicitationNotFoundOverHTTP(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, http.MethodGet, "/api/solicitations/999", nil)
	gt.Number(t, rec.Code).Equal(http.StatusNotFound)
}

func TestApproveToBidBlockedReturnsConflictWithBlockers(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, http.MethodPost, "/api/solicitations", map[string]any{
		"number": "W15P7T-26-R-0022",
		"title":  "Unprepared Bid",
	})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, srv, http.MethodPost, "/api/solicitations/1/approve-to-bid", nil)
	gt.Number(t, rec.Code).Equal(http.StatusConflict)

	var resp struct {
		Blockers []model.Blocker `json:"blockers"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Array(t, resp.Blockers).Length(2)
}

func TestClauseCatalogOverHTTP(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, http.MethodPost, "/api/clauses", map[string]any{
		"family":             "DFARS",
		"number":             "252.204-7012",
		"title":              "Safeguarding Covered Defense Information",
		"base_risk_category": "CYBERSECURITY",
		"base_risk_score":    4,
		"base_flow_down":     "REQUIRED",
	})
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodPut, "/api/overlays", map[string]any{
		"family":     "DFARS",
		"number":     "252.204-7012",
		"risk_score": 5,
	})
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodGet, "/api/clauses/effective?family=DFARS&number=252.204-7012", nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	var effective model.EffectiveClause
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &effective)).Required()
	gt.Number(t, effective.RiskScore).Equal(5)
	gt.Bool(t, effective.HasOverlay).True()
}

func TestMaturityEndpoint(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, http.MethodGet, "/api/maturity", nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	var result model.MaturityResult
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
	gt.Array(t, result.Pillars).Length(7)
	gt.Number(t, result.Overall).Equal(100)
}
