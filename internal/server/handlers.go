package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nlcsci/pmcice/internal/batch"
	"github.com/nlcsci/pmcice/internal/constants"
	"github.com/nlcsci/pmcice/pkg/icemodel"
	"github.com/nlcsci/pmcice/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// jobFromRequest translates one compute request into a batch job, applying
// the configured default parameterization when the request leaves it unset.
func (h *Handlers) jobFromRequest(cr ComputeRequest) batch.Job {
	vp := icemodel.Parameterization(cr.VPO)
	if cr.VPO == 0 {
		vp = icemodel.Parameterization(h.controller.cfg.Model.DefaultParameterization)
	}
	job := batch.Job{
		Profile: icemodel.Profile{
			Z:   cr.Z,
			T:   cr.T,
			P:   cr.P,
			H2O: cr.H2O,
		},
		Parameterization: vp,
	}
	if cr.FixedDZ != nil {
		job.Options = append(job.Options, icemodel.WithFixedDZ(*cr.FixedDZ))
	}
	return job
}

// recordRun persists one successful computation when storage is configured
// and returns the stored run ID.
func (h *Handlers) recordRun(job batch.Job, res *icemodel.Result) string {
	if h.controller.store == nil {
		return ""
	}
	rec, err := h.controller.store.RecordRun(job.Parameterization, len(job.Profile.Z), res.Layer)
	if err != nil {
		// Persistence is best-effort; the computed result is still
		// returned to the caller.
		h.controller.logger.Errorf("failed to record run: %v", err)
		return ""
	}
	return rec.ID
}

// Compute handles POST /api/compute: one profile in, full model output out.
func (h *Handlers) Compute(w http.ResponseWriter, req *http.Request) {
	var cr ComputeRequest
	if err := json.NewDecoder(req.Body).Decode(&cr); err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	job := h.jobFromRequest(cr)
	res, err := icemodel.Compute(job.Profile, job.Parameterization, job.Options...)
	if err != nil {
		// Configuration errors (bad selector, mismatched lengths) are
		// the caller's fault; nothing was computed.
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}

	h.formatter.WriteResponse(w, req, ComputeResponse{
		RunID:            h.recordRun(job, res),
		Parameterization: int(job.Parameterization),
		Result:           res,
	})
}

// ComputeBatch handles POST /api/compute/batch: many independent profiles,
// computed concurrently, results in request order. A profile with a bad
// configuration yields an error item without failing the batch.
func (h *Handlers) ComputeBatch(w http.ResponseWriter, req *http.Request) {
	var br BatchRequest
	if err := json.NewDecoder(req.Body).Decode(&br); err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(br.Profiles) == 0 {
		h.formatter.WriteError(w, req, http.StatusBadRequest, "batch contains no profiles")
		return
	}

	jobs := make([]batch.Job, len(br.Profiles))
	for i, cr := range br.Profiles {
		jobs[i] = h.jobFromRequest(cr)
	}

	outcomes := h.controller.pool.Run(req.Context(), jobs)

	resp := BatchResponse{Items: make([]BatchItem, len(outcomes))}
	for i, o := range outcomes {
		if o.Err != nil {
			resp.Items[i] = BatchItem{Error: o.Err.Error()}
			continue
		}
		resp.Items[i] = BatchItem{
			RunID:            h.recordRun(jobs[i], o.Result),
			Parameterization: int(jobs[i].Parameterization),
			Result:           o.Result,
		}
	}

	h.formatter.WriteResponse(w, req, resp)
}

// GetRuns handles GET /api/runs?limit=N over the persisted run summaries.
func (h *Handlers) GetRuns(w http.ResponseWriter, req *http.Request) {
	if h.controller.store == nil {
		h.formatter.WriteError(w, req, http.StatusServiceUnavailable, "run storage is not configured")
		return
	}

	limit := 0
	if v := req.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = n
	}

	recs, err := h.controller.store.RecentRuns(limit)
	if err != nil {
		h.controller.logger.Errorf("failed to query runs: %v", err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "failed to query runs")
		return
	}
	h.formatter.WriteResponse(w, req, recs)
}

// Health handles GET /api/health.
func (h *Handlers) Health(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, HealthResponse{
		Status:  "ok",
		Version: constants.Version,
	})
}
