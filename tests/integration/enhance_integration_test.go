package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/auth"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/enhancement"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/gateway"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/metrics"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/techniques"
	"github.com/promptforge/prompt-studio/enhancer-api/tests/helpers"
)

type testEnv struct {
	router     *gin.Engine
	jwtManager *auth.JWTManager
	store      *helpers.MemoryHistoryStore
}

// setupTestEnv builds the full HTTP surface over an in-memory history store.
// The classifier service is absent, so classification uses the heuristic.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	originalSecret := os.Getenv("JWT_SECRET")
	os.Setenv("JWT_SECRET", "integration-test-secret-key")
	t.Cleanup(func() {
		if originalSecret == "" {
			os.Unsetenv("JWT_SECRET")
		} else {
			os.Setenv("JWT_SECRET", originalSecret)
		}
	})

	jwtManager, err := auth.NewJWTManager()
	require.NoError(t, err)

	registry, err := techniques.NewRegistry()
	require.NoError(t, err)
	executor := chain.NewExecutor(registry)

	chainMetrics, err := metrics.NewChainMetrics()
	require.NoError(t, err)

	store := helpers.NewMemoryHistoryStore()
	service := enhancement.NewService(executor, registry, nil, store, chainMetrics)

	handler := gateway.NewHandler(service, jwtManager, nil)
	streamer := gateway.NewStreamer(service)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	api.POST("/auth/refresh", handler.RefreshToken)

	protected := api.Group("")
	protected.Use(auth.RequireAuth(jwtManager))
	protected.GET("/techniques", handler.ListTechniques)
	protected.POST("/enhance", handler.Enhance)
	protected.GET("/history", handler.ListHistory)
	protected.GET("/history/:id", handler.GetEnhancement)
	protected.POST("/history/:id/rerun", handler.RerunEnhancement)
	protected.GET("/ws/enhancements", streamer.StreamEnhancements)

	return &testEnv{router: router, jwtManager: jwtManager, store: store}
}

func (env *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := env.jwtManager.GenerateToken(context.Background(), userID, "test@example.com", []string{"user"}, time.Hour)
	require.NoError(t, err)
	return token
}

func (env *testEnv) postJSON(t *testing.T, path, token string, body map[string]interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestFullChainEnhancement(t *testing.T) {
	env := setupTestEnv(t)
	userID := "6d5b0f6a-2e4c-4a8d-b1f3-9c7e5a2d8b4f"
	token := env.token(t, userID)

	t.Run("all five techniques over a math prompt", func(t *testing.T) {
		w, resp := env.postJSON(t, "/api/enhance", token,
			helpers.CreateTestEnhanceRequest(helpers.MathPrompt, helpers.AllTechniques))
		require.Equal(t, http.StatusOK, w.Code)

		assert.Contains(t, resp["enhanced_prompt"], "3x + 7 = 22")

		metadata := resp["metadata"].(map[string]interface{})
		summary := metadata["chain_summary"].(map[string]interface{})

		applied := summary["techniques_applied"].([]interface{})
		require.Len(t, applied, len(helpers.AllTechniques))
		for i, id := range helpers.AllTechniques {
			assert.Equal(t, id, applied[i])
		}

		timings := summary["technique_timings"].([]interface{})
		require.Len(t, timings, len(helpers.AllTechniques))
		for i, raw := range timings {
			timing := raw.(map[string]interface{})
			assert.Equal(t, helpers.AllTechniques[i], timing["technique"])
			assert.GreaterOrEqual(t, timing["duration_ms"].(float64), 0.0)
		}

		assert.Equal(t, "mathematical", summary["detected_domain"])
		assert.Empty(t, metadata["chain_errors"])

		techniqueMetadata := metadata["technique_metadata"].(map[string]interface{})
		assert.Contains(t, techniqueMetadata, "chain_of_thought")
		assert.Contains(t, techniqueMetadata, "few_shot")
	})

	t.Run("duplicate technique ids are applied twice", func(t *testing.T) {
		w, resp := env.postJSON(t, "/api/enhance", token,
			helpers.CreateTestEnhanceRequest(helpers.GenericPrompt, []string{"step_by_step", "step_by_step"}))
		require.Equal(t, http.StatusOK, w.Code)

		metadata := resp["metadata"].(map[string]interface{})
		summary := metadata["chain_summary"].(map[string]interface{})
		applied := summary["techniques_applied"].([]interface{})
		assert.Equal(t, []interface{}{"step_by_step", "step_by_step"}, applied)

		timings := summary["technique_timings"].([]interface{})
		assert.Len(t, timings, 2)
	})

	t.Run("per-technique options are honored", func(t *testing.T) {
		w, resp := env.postJSON(t, "/api/enhance", token,
			helpers.CreateTestEnhanceRequestWithOptions(
				helpers.MathPrompt,
				[]string{"chain_of_thought", "few_shot"},
				"problem_solving", "moderate",
				map[string]map[string]interface{}{
					"few_shot": {"example_count": 3},
				}))
		require.Equal(t, http.StatusOK, w.Code)

		metadata := resp["metadata"].(map[string]interface{})
		techniqueMetadata := metadata["technique_metadata"].(map[string]interface{})
		fewShot := techniqueMetadata["few_shot"].(map[string]interface{})
		assert.Equal(t, float64(3), fewShot["example_count"])
		assert.Equal(t, "mathematical", fewShot["example_source"])
	})

	t.Run("repeated identical requests are deterministic", func(t *testing.T) {
		request := helpers.CreateTestEnhanceRequestWithOptions(
			helpers.AlgorithmPrompt, helpers.AllTechniques, "problem_solving", "complex", nil)

		_, first := env.postJSON(t, "/api/enhance", token, request)
		_, second := env.postJSON(t, "/api/enhance", token, request)

		assert.Equal(t, first["enhanced_prompt"], second["enhanced_prompt"])
		assert.Equal(t, first["metadata"].(map[string]interface{})["technique_metadata"],
			second["metadata"].(map[string]interface{})["technique_metadata"])
	})

	t.Run("best effort with unknown ids mixed in", func(t *testing.T) {
		w, resp := env.postJSON(t, "/api/enhance", token,
			helpers.CreateTestEnhanceRequest(helpers.CodePrompt,
				[]string{"nope", "chain_of_thought", "also_nope", "structured_output"}))
		require.Equal(t, http.StatusOK, w.Code)

		metadata := resp["metadata"].(map[string]interface{})
		summary := metadata["chain_summary"].(map[string]interface{})
		applied := summary["techniques_applied"].([]interface{})
		assert.Equal(t, []interface{}{"chain_of_thought", "structured_output"}, applied)

		chainErrors := metadata["chain_errors"].([]interface{})
		require.Len(t, chainErrors, 2)
		assert.Equal(t, "nope", chainErrors[0].(map[string]interface{})["technique"])
		assert.Equal(t, "also_nope", chainErrors[1].(map[string]interface{})["technique"])

		warnings := resp["warnings"].([]interface{})
		assert.NotEmpty(t, warnings)
	})
}

func TestHistoryRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	userID := "6d5b0f6a-2e4c-4a8d-b1f3-9c7e5a2d8b4f"
	token := env.token(t, userID)

	w, resp := env.postJSON(t, "/api/enhance", token,
		helpers.CreateTestEnhanceRequest(helpers.WritingPrompt, []string{"role_play", "structured_output"}))
	require.Equal(t, http.StatusOK, w.Code)
	enhancementID := resp["enhancement_id"].(string)
	require.NotEmpty(t, enhancementID)
	require.Equal(t, 1, env.store.Count())

	t.Run("rerun persists a second record with the same result", func(t *testing.T) {
		w, rerun := env.postJSON(t, "/api/history/"+enhancementID+"/rerun", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, resp["enhanced_prompt"], rerun["enhanced_prompt"])
		assert.NotEqual(t, enhancementID, rerun["enhancement_id"])
		assert.Equal(t, 2, env.store.Count())
	})

	t.Run("list shows both records newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var listResp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
		items := listResp["items"].([]interface{})
		assert.Len(t, items, 2)
	})

	t.Run("save failure still returns the enhancement", func(t *testing.T) {
		env.store.SaveErr = assert.AnError
		defer func() { env.store.SaveErr = nil }()

		w, resp := env.postJSON(t, "/api/enhance", token,
			helpers.CreateTestEnhanceRequest(helpers.GenericPrompt, []string{"role_play"}))
		require.Equal(t, http.StatusOK, w.Code)

		assert.NotEmpty(t, resp["enhanced_prompt"])
		assert.Nil(t, resp["enhancement_id"])
		warnings := resp["warnings"].([]interface{})
		assert.Contains(t, warnings, "enhancement could not be saved to history")
	})
}
