package server

import "github.com/nlcsci/pmcice/pkg/icemodel"

// ComputeRequest is one profile submitted for computation. VPO selects the
// saturation vapor pressure parameterization (1, 2, or 3) and falls back to
// the configured default when zero. FixedDZ, when present, replaces the
// per-level centered-difference spacing in the layer column integration.
type ComputeRequest struct {
	Z       []float64 `json:"z"`
	T       []float64 `json:"t"`
	P       []float64 `json:"p"`
	H2O     []float64 `json:"h2o"`
	VPO     int       `json:"vpo,omitempty"`
	FixedDZ *float64  `json:"fixed_dz,omitempty"`
}

// ComputeResponse carries the full model output for one profile. RunID is
// set when run storage is configured.
type ComputeResponse struct {
	RunID            string           `json:"run_id,omitempty"`
	Parameterization int              `json:"parameterization"`
	Result           *icemodel.Result `json:"result"`
}

// BatchRequest is a list of independent profiles computed concurrently.
type BatchRequest struct {
	Profiles []ComputeRequest `json:"profiles"`
}

// BatchItem is the outcome for one profile of a batch, in request order.
// Exactly one of Error and the result fields is meaningful.
type BatchItem struct {
	RunID            string           `json:"run_id,omitempty"`
	Parameterization int              `json:"parameterization,omitempty"`
	Result           *icemodel.Result `json:"result,omitempty"`
	Error            string           `json:"error,omitempty"`
}

// BatchResponse wraps the per-profile outcomes of a batch request.
type BatchResponse struct {
	Items []BatchItem `json:"items"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
