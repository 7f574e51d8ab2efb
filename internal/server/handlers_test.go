package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/nlcsci/pmcice/internal/storage/sqlite"
	"github.com/nlcsci/pmcice/pkg/config"
)

func testController(t *testing.T, store *sqlite.RunStore) *Controller {
	t.Helper()
	cfg := &config.ConfigData{}
	cfg.ApplyDefaults()

	var wg sync.WaitGroup
	ctrl, err := NewController(context.Background(), &wg, cfg, store, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewController returned error: %v", err)
	}
	return ctrl
}

func postJSON(t *testing.T, ctrl *Controller, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	rr := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rr, req)
	return rr
}

func coldProfileRequest() ComputeRequest {
	return ComputeRequest{
		Z:   []float64{83, 84, 85, 86, 87},
		T:   []float64{220, 210, 140, 210, 220},
		P:   []float64{0.02, 0.015, 0.01, 0.008, 0.006},
		H2O: []float64{8, 8, 8, 8, 8},
	}
}

func TestComputeEndpoint(t *testing.T) {
	ctrl := testController(t, nil)
	rr := postJSON(t, ctrl, "/api/compute", coldProfileRequest())

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp ComputeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Parameterization != 1 {
		t.Errorf("parameterization = %d, want default 1", resp.Parameterization)
	}
	if resp.Result == nil || resp.Result.Layer.ZMax != 85 {
		t.Errorf("unexpected result: %+v", resp.Result)
	}
	if resp.RunID != "" {
		t.Errorf("run ID set without storage: %q", resp.RunID)
	}
}

func TestComputeEndpointBadRequests(t *testing.T) {
	ctrl := testController(t, nil)

	t.Run("invalid parameterization", func(t *testing.T) {
		cr := coldProfileRequest()
		cr.VPO = 4
		if rr := postJSON(t, ctrl, "/api/compute", cr); rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		cr := coldProfileRequest()
		cr.T = cr.T[:3]
		if rr := postJSON(t, ctrl, "/api/compute", cr); rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/compute", bytes.NewReader([]byte("{")))
		rr := httptest.NewRecorder()
		ctrl.Server.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})
}

func TestComputeBatchEndpoint(t *testing.T) {
	ctrl := testController(t, nil)

	bad := coldProfileRequest()
	bad.VPO = 9
	batch := BatchRequest{Profiles: []ComputeRequest{coldProfileRequest(), bad, coldProfileRequest()}}

	rr := postJSON(t, ctrl, "/api/compute/batch", batch)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp BatchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(resp.Items))
	}
	// One bad profile yields an error item without failing its siblings.
	if resp.Items[1].Error == "" || resp.Items[1].Result != nil {
		t.Errorf("item 1 = %+v, want error", resp.Items[1])
	}
	for _, i := range []int{0, 2} {
		if resp.Items[i].Error != "" || resp.Items[i].Result == nil {
			t.Errorf("item %d = %+v, want result", i, resp.Items[i])
		}
	}
}

func TestComputeBatchEmpty(t *testing.T) {
	ctrl := testController(t, nil)
	if rr := postJSON(t, ctrl, "/api/compute/batch", BatchRequest{}); rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestRunsEndpoint(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	ctrl := testController(t, store)
	rr := postJSON(t, ctrl, "/api/compute", coldProfileRequest())
	if rr.Code != http.StatusOK {
		t.Fatalf("compute status = %d", rr.Code)
	}
	var resp ComputeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.RunID == "" {
		t.Error("run ID missing with storage configured")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/runs?limit=10", nil)
	rec := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("runs status = %d", rec.Code)
	}
	var recs []sqlite.RunRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decoding runs: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != resp.RunID {
		t.Errorf("runs = %+v, want single record %s", recs, resp.RunID)
	}
}

func TestRunsEndpointWithoutStorage(t *testing.T) {
	ctrl := testController(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rr := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ctrl := testController(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestComputeEndpointMsgPack(t *testing.T) {
	ctrl := testController(t, nil)
	buf, _ := json.Marshal(coldProfileRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/compute?format=msgpack", bytes.NewReader(buf))
	rr := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Errorf("Content-Type = %q, want application/x-msgpack", ct)
	}
}
