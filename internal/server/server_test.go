package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmcalc/internal/cache"
	"tmcalc/internal/config"
	"tmcalc/internal/metrics"
	"tmcalc/pkg/api"
)

func base() config.Config {
	return config.Config{
		Hybridization: "dnadna",
		OligoConc:     1e-4,
		Solution:      config.Solution{Na: 1},
		Mode:          "def",
		Threshold:     60,
	}
}

func post(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/tm", bytes.NewReader(b)))
	return rec
}

func TestComputeEndpoint(t *testing.T) {
	m := metrics.New()
	h := NewHandler(&Server{Base: base(), Metrics: m})

	rec := post(t, h, api.RequestV1{Sequence: "CGTTGA", Trace: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v api.ResultV1
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "CGTTGA", v.Sequence)
	assert.Equal(t, "GCAACT", v.Complementary)
	assert.Equal(t, "NN", v.Mode)
	assert.InDelta(t, -41200, v.Enthalpy, 1e-9)
	assert.NotEmpty(t, v.Trace)
	assert.Equal(t, "miss", rec.Header().Get("X-Cache"))

	mrec := httptest.NewRecorder()
	h.ServeHTTP(mrec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, mrec.Body.String(), `tmcalc_runs_total{mode="NN",status="ok"} 1`)
}

func TestComputeErrors(t *testing.T) {
	h := NewHandler(&Server{Base: base()})

	cases := []struct {
		name string
		req  api.RequestV1
		code int
		kind string
	}{
		{"bad base", api.RequestV1{Sequence: "CGXTGA"}, http.StatusBadRequest, "sequence"},
		{"bad hybridization", api.RequestV1{Sequence: "CGTTGA", Hybridization: "xx"}, http.StatusBadRequest, "invalid_option"},
		{"bad solution", api.RequestV1{Sequence: "CGTTGA", Solution: "Na"}, http.StatusBadRequest, "invalid_option"},
		{"unknown model", api.RequestV1{Sequence: "CGTTGA", Methods: map[string]string{"nn": "nope"}}, http.StatusUnprocessableEntity, "no_method"},
		{"wrong factor", api.RequestV1{Sequence: "GCATGC", Factor: 4}, http.StatusUnprocessableEntity, "not_applicable"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := post(t, h, c.req)
			assert.Equal(t, c.code, rec.Code, rec.Body.String())
			var e api.ErrorV1
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			assert.Equal(t, c.kind, e.Kind)
			assert.NotEmpty(t, e.Error)
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/tm", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComputeIsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.NewFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
	h := NewHandler(&Server{Base: base(), Cache: c})

	req := api.RequestV1{Sequence: "cgttga", Solution: "Na=1"}
	first := post(t, h, req)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "miss", first.Header().Get("X-Cache"))

	req.Sequence = "CGTTGA"
	second := post(t, h, req)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"), "the key is the normalized request")
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Len(t, mr.Keys(), 1)
}

func TestMethodsAndHealth(t *testing.T) {
	h := NewHandler(&Server{Base: base()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/methods?hybridization=rnarna", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var m api.MethodsV1
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "rnarna", m.Hybridization)
	require.NotEmpty(t, m.Options)
	assert.Equal(t, "nn", m.Options[0].Option)
	assert.Equal(t, "xia98", m.Options[0].Default)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/methods?hybridization=zz", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListenAndServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", NewHandler(&Server{Base: base()}), discard(), ready)
	}()
	addr := <-ready
	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
