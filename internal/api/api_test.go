package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LaurealDente/env5001/internal/config"
	"github.com/LaurealDente/env5001/internal/estimate"
)

func fixtureSource() Source {
	days := []estimate.DayCounts{
		{Date: estimate.NewDate(2025, time.January, 6), Chatbots: 14, Completions: 3, Translations: 7, Sessions: 120},
		{Date: estimate.NewDate(2025, time.January, 7), Chatbots: 2, Translations: 1},
		{Date: estimate.NewDate(2025, time.January, 8), Completions: 5},
	}
	return Source{
		Config: func() (*config.Config, error) { return config.Default(), nil },
		Days:   func(*config.Config) ([]estimate.DayCounts, error) { return days, nil },
	}
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(fixtureSource(), zerolog.Nop()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, Response) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestSummary(t *testing.T) {
	srv := testServer(t)

	code, body := get(t, srv.URL+"/summary")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body.Status)

	data := body.Data.(map[string]any)
	echo := data["config"].(map[string]any)
	assert.EqualValues(t, 2000, echo["topic_size_chars"])
	assert.EqualValues(t, 250, echo["carbon_intensity_g_per_kwh"])

	summary := data["summary"].(map[string]any)
	assert.Greater(t, summary["tokens_total"].(float64), 0.0)
	assert.Greater(t, summary["co2_g_total"].(float64), 0.0)
}

func TestDaily(t *testing.T) {
	srv := testServer(t)

	t.Run("known date", func(t *testing.T) {
		code, body := get(t, srv.URL+"/daily/2025-01-06")
		require.Equal(t, http.StatusOK, code)

		day := body.Data.(map[string]any)
		assert.Equal(t, "2025-01-06", day["date"])
		assert.EqualValues(t, 120, day["sessions"])

		profiles := day["profiles"].(map[string]any)
		require.Contains(t, profiles, "translation")
		require.Contains(t, profiles, "completion")
		require.Contains(t, profiles, "chatbot")
	})

	t.Run("absent date is 404", func(t *testing.T) {
		code, body := get(t, srv.URL+"/daily/2030-12-31")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "error", body.Status)
		assert.EqualValues(t, "not_found", body.ErrorType)
	})

	t.Run("malformed date is 400", func(t *testing.T) {
		code, body := get(t, srv.URL+"/daily/06-01-2025")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.EqualValues(t, "bad_data", body.ErrorType)
	})
}

func TestRange(t *testing.T) {
	srv := testServer(t)

	t.Run("inclusive bounds", func(t *testing.T) {
		code, body := get(t, srv.URL+"/range?start=2025-01-07&end=2025-01-08")
		require.Equal(t, http.StatusOK, code)

		data := body.Data.(map[string]any)
		days := data["days"].([]any)
		require.Len(t, days, 2)
		assert.Equal(t, "2025-01-07", days[0].(map[string]any)["date"])
		assert.Equal(t, "2025-01-08", days[1].(map[string]any)["date"])
	})

	t.Run("unbounded matches summary", func(t *testing.T) {
		_, all := get(t, srv.URL+"/range")
		_, summary := get(t, srv.URL+"/summary")

		rangeSummary := all.Data.(map[string]any)["summary"]
		fullSummary := summary.Data.(map[string]any)["summary"]
		assert.Equal(t, fullSummary, rangeSummary)
	})

	t.Run("model selection changes figures", func(t *testing.T) {
		_, tokenVolume := get(t, srv.URL+"/range?model=token-volume")
		_, computeTime := get(t, srv.URL+"/range?model=compute-time")

		a := tokenVolume.Data.(map[string]any)["summary"].(map[string]any)["energy_j_total"].(float64)
		b := computeTime.Data.(map[string]any)["summary"].(map[string]any)["energy_j_total"].(float64)
		assert.NotEqual(t, a, b)
	})

	t.Run("bad bound is 400", func(t *testing.T) {
		code, body := get(t, srv.URL+"/range?start=January")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.EqualValues(t, "bad_data", body.ErrorType)
	})

	t.Run("unknown region is 404", func(t *testing.T) {
		code, body := get(t, srv.URL+"/range?region=atlantis")
		assert.Equal(t, http.StatusNotFound, code)
		assert.EqualValues(t, "not_found", body.ErrorType)
	})

	t.Run("unknown model is 400", func(t *testing.T) {
		code, _ := get(t, srv.URL+"/range?model=quantum")
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func postEstimate(t *testing.T, srv *httptest.Server, payload string) (int, Response) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/estimate", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestEstimate(t *testing.T) {
	srv := testServer(t)

	t.Run("explicit sizes", func(t *testing.T) {
		code, body := postEstimate(t, srv, `{"profile":"completion","topics":[1000],"prompts":[200],"output_tokens":50}`)
		require.Equal(t, http.StatusOK, code)

		data := body.Data.(map[string]any)
		assert.Greater(t, data["time_s"].(float64), 0.0)
		assert.Greater(t, data["energy_j"].(float64), 0.0)
		assert.Greater(t, data["energy_kwh"].(float64), 0.0)
		assert.Greater(t, data["co2_g"].(float64), 0.0)
	})

	t.Run("region changes carbon", func(t *testing.T) {
		_, def := postEstimate(t, srv, `{"profile":"translation"}`)
		_, fr := postEstimate(t, srv, `{"profile":"translation","region":"france"}`)

		co2Default := def.Data.(map[string]any)["co2_g"].(float64)
		co2France := fr.Data.(map[string]any)["co2_g"].(float64)
		assert.Less(t, co2France, co2Default)
	})

	t.Run("unknown profile is 400", func(t *testing.T) {
		code, body := postEstimate(t, srv, `{"profile":"oracle"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.EqualValues(t, "bad_data", body.ErrorType)
		assert.Contains(t, body.Error, "oracle")
	})

	t.Run("unknown tier is 404", func(t *testing.T) {
		code, _ := postEstimate(t, srv, `{"profile":"translation","tier":"tpu-v9"}`)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		code, _ := postEstimate(t, srv, `{not json`)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestDashboardAndRedirect(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/ui")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	root, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	defer func() { _ = root.Body.Close() }()
	assert.Equal(t, http.StatusFound, root.StatusCode)
	assert.Equal(t, "/ui", root.Header.Get("Location"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	// Hit an instrumented route first so the counters exist.
	_, _ = get(t, srv.URL+"/summary")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
