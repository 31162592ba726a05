package test

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestProtectedPathsNeedSession() {
	t := s.T()

	for _, path := range []string{"/athletes", "/trainings/7/signals", "/activity/page/1/size/10"} {
		resp, err := s.httpClient.Get(serverEndpoint + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		require.NoError(t, resp.Body.Close())
	}
}

func (s *IntegrationTestSuite) TestAthletesList() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)

	resp, err := s.httpClient.Do(authedRequest(ctx, t, "GET", "/athletes", token, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Count   int `json:"count"`
		Results []struct {
			ID        int    `json:"id"`
			Firstname string `json:"firstname"`
		} `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Ali", page.Results[0].Firstname)
}

func (s *IntegrationTestSuite) TestTrainingSignals_CachedWithETag() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)
	callsBefore := s.backend.signalsCalls.Load()

	var etag string
	for i := 0; i < 3; i++ {
		resp, err := s.httpClient.Do(authedRequest(ctx, t, "GET", "/trainings/7/signals", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())

		assert.Contains(t, string(body), `"rows_count":120`)
		etag = resp.Header.Get("ETag")
		require.NotEmpty(t, etag)
	}
	assert.LessOrEqual(t, s.backend.signalsCalls.Load()-callsBefore, int32(1))

	req := authedRequest(ctx, t, "GET", "/trainings/7/signals", token, nil)
	req.Header.Set("If-None-Match", etag)
	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp, err = s.httpClient.Do(authedRequest(ctx, t, "GET", "/trainings/8/signals", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func (s *IntegrationTestSuite) TestSelectionThenExercise() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)

	// zoom past the end of the signal, the selection is clamped to the last row
	resp, err := s.httpClient.Do(authedRequest(ctx, t, "POST", "/trainings/7/selection", token,
		strings.NewReader(`{"event":{"xaxis.range[0]":"10.6","xaxis.range[1]":500}}`)))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sel struct {
		Selection *struct {
			Start int `json:"start"`
			End   int `json:"end"`
		} `json:"selection"`
		Changed bool `json:"changed"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sel))
	require.NoError(t, resp.Body.Close())
	require.NotNil(t, sel.Selection)
	assert.True(t, sel.Changed)
	assert.Equal(t, 11, sel.Selection.Start)
	assert.Equal(t, 119, sel.Selection.End)

	selBody, err := json.Marshal(map[string]any{
		"start":       sel.Selection.Start,
		"end":         sel.Selection.End,
		"description": "squats",
	})
	require.NoError(t, err)
	resp, err = s.httpClient.Do(authedRequest(ctx, t, "POST", "/trainings/7/exercises", token, strings.NewReader(string(selBody))))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	exercise := s.backend.lastExercise()
	require.NotNil(t, exercise)
	assert.Equal(t, 11.0, exercise["first_count"])
	assert.Equal(t, 119.0, exercise["last_count"])
	assert.Equal(t, 108.0, exercise["signal_length"])
	assert.Equal(t, 7.0, exercise["training"])

	// the backend rejects a selection starting at 0, the dashboard passes the message on
	resp, err = s.httpClient.Do(authedRequest(ctx, t, "POST", "/trainings/7/exercises", token,
		strings.NewReader(`{"start":0,"end":30}`)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	assert.Contains(t, s.activityTypes(), "exercise_created")
}

func (s *IntegrationTestSuite) TestFatigueTrend() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)

	resp, err := s.httpClient.Do(authedRequest(ctx, t, "GET", "/trainings/7/fatigue?muscle=BB", token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ft struct {
		Values []float64 `json:"values"`
		Trend  []float64 `json:"trend"`
		Slope  *float64  `json:"slope"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ft))
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, []float64{0.2, 0.25, 0.31, 0.4}, ft.Values)
	require.Len(t, ft.Trend, 4)
	require.NotNil(t, ft.Slope)
	assert.Greater(t, *ft.Slope, 0.0)

	resp, err = s.httpClient.Do(authedRequest(ctx, t, "GET", "/trainings/7/fatigue.png?muscle=BB", token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	_, err = png.Decode(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
}

func (s *IntegrationTestSuite) TestActivityLog() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)

	resp, err := s.httpClient.Do(authedRequest(ctx, t, "GET", "/activity/page/1/size/50", token, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var page struct {
		Total  int `json:"total"`
		Events []struct {
			Type string `json:"type"`
			City string `json:"city"`
		} `json:"events"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.NotEmpty(t, page.Events)
	assert.GreaterOrEqual(t, page.Total, len(page.Events))

	// newest first, the login above is on top; local requests get the dev location
	assert.Equal(t, "login", page.Events[0].Type)
	assert.Equal(t, "Tashkent", page.Events[0].City)
}
