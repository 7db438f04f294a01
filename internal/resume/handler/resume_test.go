package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/biz"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/handler"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
	"github.com/Anurag02012004/ai-resume-project/pkg/utils/json"
)

type fakeService struct {
	queryResp  *model.QueryResponse
	queryErr   error
	syncReport *model.SyncReport
	syncErr    error
	stats      *model.IndexStats
	statsErr   error
}

var _ biz.Service = (*fakeService)(nil)

func (f *fakeService) Query(ctx context.Context, query string) (*model.QueryResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, biz.ErrEmptyQuery
	}
	return f.queryResp, f.queryErr
}

func (f *fakeService) Sync(ctx context.Context, opts biz.SyncOptions) (*model.SyncReport, error) {
	return f.syncReport, f.syncErr
}

func (f *fakeService) Stats(ctx context.Context) (*model.IndexStats, error) {
	return f.stats, f.statsErr
}

type fakeProfile struct {
	snapshot *model.ProfileSnapshot
	err      error
}

var _ store.ProfileStore = (*fakeProfile)(nil)

func (f *fakeProfile) Snapshot(ctx context.Context) (*model.ProfileSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeProfile) Projects(ctx context.Context) ([]*model.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot.Projects, nil
}

func (f *fakeProfile) Experiences(ctx context.Context) ([]*model.Experience, error) {
	return f.snapshot.Experiences, f.err
}

func (f *fakeProfile) Skills(ctx context.Context) ([]*model.Skill, error) {
	return f.snapshot.Skills, f.err
}

func (f *fakeProfile) Education(ctx context.Context) ([]*model.Education, error) {
	return f.snapshot.Education, f.err
}

func (f *fakeProfile) Certificates(ctx context.Context) ([]*model.Certificate, error) {
	return f.snapshot.Certificates, f.err
}

func newTestRouter(service biz.Service, profile store.ProfileStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewResumeHandler(service, profile)

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	v1.GET("/health", h.Health)
	v1.GET("/projects", h.Projects)
	v1.POST("/query", h.Query)
	v1.POST("/sync", h.Sync)
	v1.GET("/stats", h.Stats)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestRouter(&fakeService{}, &fakeProfile{})

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["message"])
}

func TestQueryEndpointSuccess(t *testing.T) {
	svc := &fakeService{
		queryResp: &model.QueryResponse{
			Answer: "Two projects are listed.",
			Tier:   model.TierKeywordTemplate,
			Sources: []model.Source{
				{Type: model.DocTypeProject, Title: "Telemetry Pipeline", Score: 0.4},
			},
		},
	}
	engine := newTestRouter(svc, &fakeProfile{})

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/query", `{"query":"projects?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "Two projects are listed.", data["answer"])
	assert.Equal(t, model.TierKeywordTemplate, data["tier"])
}

func TestQueryEndpointRejectsMissingQuery(t *testing.T) {
	engine := newTestRouter(&fakeService{}, &fakeProfile{})

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/query", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryEndpointRejectsWhitespaceQuery(t *testing.T) {
	engine := newTestRouter(&fakeService{}, &fakeProfile{})

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/query", `{"query":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["message"], "empty")
}

func TestQueryEndpointServiceError(t *testing.T) {
	svc := &fakeService{queryErr: errors.New("profile store gone")}
	engine := newTestRouter(svc, &fakeProfile{})

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/query", `{"query":"projects"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSyncEndpointSuccess(t *testing.T) {
	svc := &fakeService{
		syncReport: &model.SyncReport{
			Status:             model.SyncStatusSuccess,
			DocumentsProcessed: 9,
			VectorsUpserted:    9,
		},
	}
	engine := newTestRouter(svc, &fakeProfile{})

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/sync", `{"rebuild":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, model.SyncStatusSuccess, data["status"])
	assert.Equal(t, float64(9), data["documents_processed"])
}

func TestSyncEndpointWithoutBody(t *testing.T) {
	svc := &fakeService{
		syncReport: &model.SyncReport{Status: model.SyncStatusSkipped, Message: "vector index not configured"},
	}
	engine := newTestRouter(svc, &fakeProfile{})

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/sync", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, model.SyncStatusSkipped, data["status"])
}

func TestSyncEndpointReportsPartialProgress(t *testing.T) {
	svc := &fakeService{
		syncReport: &model.SyncReport{
			Status:             model.SyncStatusError,
			DocumentsProcessed: 3,
			VectorsUpserted:    3,
			Message:            "failed to embed chunk",
		},
		syncErr: errors.New("failed to embed chunk"),
	}
	engine := newTestRouter(svc, &fakeProfile{})

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/sync", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, float64(3), data["documents_processed"])
}

func TestStatsEndpoint(t *testing.T) {
	svc := &fakeService{
		stats: &model.IndexStats{IndexConfigured: true, RowCount: 9, QueriesServed: 4},
	}
	engine := newTestRouter(svc, &fakeProfile{})

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, true, data["index_configured"])
	assert.Equal(t, float64(9), data["row_count"])
}

func TestProjectsEndpoint(t *testing.T) {
	profile := &fakeProfile{
		snapshot: &model.ProfileSnapshot{
			Projects: []*model.Project{{ID: 1, Title: "Telemetry Pipeline"}},
		},
	}
	engine := newTestRouter(&fakeService{}, profile)

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/projects", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Telemetry Pipeline", data[0].(map[string]any)["title"])
}

func TestProjectsEndpointStoreError(t *testing.T) {
	engine := newTestRouter(&fakeService{}, &fakeProfile{err: errors.New("database gone")})

	w, _ := doRequest(t, engine, http.MethodGet, "/api/v1/projects", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
