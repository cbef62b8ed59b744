package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playpool/shotsolver/internal/cache"
	"github.com/playpool/shotsolver/internal/config"
	"github.com/playpool/shotsolver/internal/history"
	"github.com/playpool/shotsolver/internal/middleware"
	"github.com/playpool/shotsolver/internal/planner"
	"github.com/playpool/shotsolver/internal/shot"
	"github.com/playpool/shotsolver/internal/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, requireAuth bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Environment: "test", JWTSecret: "test-secret", TokenTTLMinutes: 5, RequireAuth: requireAuth}
	s, err := shot.NewSolver(shot.NewStandardTable())
	require.NoError(t, err)
	p := planner.New(s, cache.New(nil, 0), history.NewRecorder(nil))
	hub := ws.NewHub(p, nil)

	router := gin.New()
	SetupRoutes(router, nil, nil, cfg, p, hub)
	return router
}

func do(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newRouter(t, false), http.MethodGet, "/api/v1/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "disabled", body["database"])
	assert.Equal(t, "disabled", body["redis"])
}

func TestTable(t *testing.T) {
	w := do(newRouter(t, false), http.MethodGet, "/api/v1/table", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Table   shot.Table    `json:"table"`
		Rails   []shot.Rail   `json:"rails"`
		Pockets []shot.Pocket `json:"pockets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, shot.NewStandardTable(), body.Table)
	assert.Len(t, body.Rails, 4)
	assert.Len(t, body.Pockets, 6)
}

func TestSolve(t *testing.T) {
	router := newRouter(t, false)
	w := do(router, http.MethodPost, "/api/v1/shots/solve",
		`{"cue":{"x":300,"y":1000},"object":{"x":500,"y":500},"pocket":"bottom_right","max_cushions":0}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Solve-ID"))

	var res planner.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, 1, res.Count)
	c := res.Candidates[0]
	assert.Equal(t, shot.KindDirect, c.Kind)
	assert.InDelta(t, 0.129, c.DifficultyScore, 0.001)
	assert.Equal(t, []shot.Vec2{}, c.CushionPoints)
	assert.Len(t, c.PathSegments, 2)
}

func TestSolveAllPockets(t *testing.T) {
	w := do(newRouter(t, false), http.MethodPost, "/api/v1/shots/solve",
		`{"cue":{"x":559,"y":300},"object":{"x":559,"y":1117.5},"pocket":null,"max_cushions":2}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var res planner.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Greater(t, res.Count, 6)
	for i := 1; i < len(res.Candidates); i++ {
		assert.LessOrEqual(t, res.Candidates[i-1].DifficultyScore, res.Candidates[i].DifficultyScore)
	}
}

func TestSolveBadRequests(t *testing.T) {
	router := newRouter(t, false)
	cases := map[string]string{
		"malformed":      `{"cue":`,
		"missing object": `{"cue":{"x":1,"y":1}}`,
		"unknown pocket": `{"cue":{"x":1,"y":1},"object":{"x":5,"y":5},"pocket":"corner"}`,
		"cushions":       `{"cue":{"x":1,"y":1},"object":{"x":5,"y":5},"max_cushions":3}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/api/v1/shots/solve", body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSolveRequiresAuthWhenConfigured(t *testing.T) {
	router := newRouter(t, true)
	body := `{"cue":{"x":300,"y":1000},"object":{"x":500,"y":500}}`

	w := do(router, http.MethodPost, "/api/v1/shots/solve", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := middleware.IssueToken("test-secret", "kiosk-1", time.Minute)
	require.NoError(t, err)
	w = do(router, http.MethodPost, "/api/v1/shots/solve", body, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHistoryRequiresAuth(t *testing.T) {
	router := newRouter(t, false)

	w := do(router, http.MethodGet, "/api/v1/history", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := middleware.IssueToken("test-secret", "kiosk-1", time.Minute)
	require.NoError(t, err)
	w = do(router, http.MethodGet, "/api/v1/history?limit=5", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"solves":[],"count":0,"enabled":false}`, w.Body.String())

	w = do(router, http.MethodGet, "/api/v1/history/not-a-uuid", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTokenWithoutRegistry(t *testing.T) {
	w := do(newRouter(t, false), http.MethodPost, "/api/v1/auth/token", `{"client_id":"a","client_secret":"b"}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
