package manifest

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
	"github.com/raveheart1/gapcheck/internal/spectral"
)

// rawCase mirrors the manifest file layout. Numeric fields are pointers so
// that absent and zero stay distinguishable during validation.
type rawCase struct {
	Type        string      `json:"type" yaml:"type"`
	Eps         *float64    `json:"eps" yaml:"eps"`
	Epsilon     *float64    `json:"epsilon" yaml:"epsilon"`
	Tol         *float64    `json:"tol" yaml:"tol"`
	CP          *float64    `json:"c_P" yaml:"c_P"`
	Alpha       *float64    `json:"alpha" yaml:"alpha"`
	Beta        *float64    `json:"beta" yaml:"beta"`
	Sigma       *float64    `json:"sigma" yaml:"sigma"`
	DeltaTauMin *float64    `json:"delta_tau_min" yaml:"delta_tau_min"`
	Core        *rawCore    `json:"core_params" yaml:"core_params"`
	Steps       []rawStep   `json:"steps" yaml:"steps"`
	Stream      *rawStream  `json:"stream_params" yaml:"stream_params"`
	R           [][]float64 `json:"R" yaml:"R"`
	Gamma       [][]float64 `json:"Gamma" yaml:"Gamma"`
}

type rawCore struct {
	Gamma *float64 `json:"gamma" yaml:"gamma"`
	T     *float64 `json:"t" yaml:"t"`
}

type rawStep struct {
	Gamma    *float64 `json:"gamma" yaml:"gamma"`
	T        *float64 `json:"t" yaml:"t"`
	DeltaTau *float64 `json:"delta_tau" yaml:"delta_tau"`
	CP       *float64 `json:"c_P" yaml:"c_P"`
}

type rawStream struct {
	Kappa1 *float64 `json:"kappa1" yaml:"kappa1"`
	Kappa2 *float64 `json:"kappa2" yaml:"kappa2"`
	Eta1   *float64 `json:"eta1" yaml:"eta1"`
	Eta2   *float64 `json:"eta2" yaml:"eta2"`
}

// Load reads, decodes, and validates the case manifest at path as the given
// type. YAML manifests are recognized by a .yml or .yaml extension;
// everything else is decoded as JSON. If the manifest itself declares a type
// it must match the requested one.
func Load(path string, caseType CaseType) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gaperrors.WrapWithMessage(err, gaperrors.Manifest,
			fmt.Sprintf("cannot read case manifest %s", path),
			"Check that the path exists and is readable")
	}

	var raw rawCase
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, gaperrors.WrapWithMessage(err, gaperrors.Manifest,
				fmt.Sprintf("cannot parse YAML manifest %s", path))
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, gaperrors.WrapWithMessage(err, gaperrors.Manifest,
				fmt.Sprintf("cannot parse JSON manifest %s", path))
		}
	}

	return build(&raw, caseType)
}

// build converts a decoded rawCase into a validated Case.
func build(raw *rawCase, caseType CaseType) (*Case, error) {
	if raw.Type != "" && raw.Type != string(caseType) {
		return nil, gaperrors.NewInputError(
			fmt.Sprintf("manifest declares type %q but %q was requested", raw.Type, caseType),
			"Pass --type matching the manifest, or fix the manifest's type field")
	}

	c := &Case{
		Type:        caseType,
		Tol:         raw.Tol,
		CP:          raw.CP,
		Alpha:       raw.Alpha,
		Beta:        raw.Beta,
		Sigma:       raw.Sigma,
		DeltaTauMin: raw.DeltaTauMin,
	}

	// "eps" wins over the legacy "epsilon" spelling when both appear.
	switch {
	case raw.Eps != nil:
		c.Eps = raw.Eps
	case raw.Epsilon != nil:
		c.Eps = raw.Epsilon
	}

	switch caseType {
	case TypeCoreBanach:
		if raw.Core == nil || raw.Core.Gamma == nil || raw.Core.T == nil {
			return nil, gaperrors.NewInputError(
				"core_banach manifest requires core_params with gamma and t",
				`Add "core_params": {"gamma": ..., "t": ...} to the manifest`)
		}
		c.Core = &CoreParams{Gamma: *raw.Core.Gamma, T: *raw.Core.T}

	case TypeLedger:
		if len(raw.Steps) == 0 {
			return nil, gaperrors.NewInputError(
				"ledger manifest requires a non-empty steps array",
				"An empty ledger is an input error, not a vacuous pass")
		}
		c.Steps = make([]Step, len(raw.Steps))
		for i, s := range raw.Steps {
			if s.Gamma == nil || s.T == nil {
				return nil, gaperrors.NewInputError(
					fmt.Sprintf("ledger step %d requires gamma and t", i))
			}
			step := Step{Gamma: *s.Gamma, T: *s.T, CP: s.CP}
			switch {
			case s.DeltaTau != nil:
				step.DeltaTau = *s.DeltaTau
			case raw.DeltaTauMin != nil:
				step.DeltaTau = *raw.DeltaTauMin
			}
			c.Steps[i] = step
		}

	case TypeCoupledStream:
		if raw.Stream == nil || raw.Stream.Kappa1 == nil || raw.Stream.Kappa2 == nil ||
			raw.Stream.Eta1 == nil || raw.Stream.Eta2 == nil {
			return nil, gaperrors.NewInputError(
				"coupled_stream manifest requires stream_params with kappa1, kappa2, eta1, eta2")
		}
		c.Stream = &StreamParams{
			Kappa1: *raw.Stream.Kappa1,
			Kappa2: *raw.Stream.Kappa2,
			Eta1:   *raw.Stream.Eta1,
			Eta2:   *raw.Stream.Eta2,
		}

	case TypeGammaV:
		r, err := buildMatrix("R", raw.R)
		if err != nil {
			return nil, err
		}
		g, err := buildMatrix("Gamma", raw.Gamma)
		if err != nil {
			return nil, err
		}
		if r.Cols() != g.Rows() {
			return nil, gaperrors.NewShapeError(
				fmt.Sprintf("R is %dx%d but Gamma is %dx%d: inner dimensions must match",
					r.Rows(), r.Cols(), g.Rows(), g.Cols()))
		}
		c.R = r
		c.Gamma = g

	default:
		return nil, gaperrors.NewInputError(fmt.Sprintf("unknown case type %q", caseType))
	}

	if err := c.validate(); err != nil {
		return nil, gaperrors.WrapWithMessage(err, gaperrors.Input, "invalid case")
	}
	return c, nil
}

// buildMatrix converts raw rows into a Dense, rejecting empty, ragged, and
// non-finite input.
func buildMatrix(name string, rows [][]float64) (*spectral.Dense, error) {
	if len(rows) == 0 {
		return nil, gaperrors.NewInputError(fmt.Sprintf("gammaV manifest requires matrix %s", name))
	}
	for i, row := range rows {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, gaperrors.NewInputError(
					fmt.Sprintf("matrix %s[%d][%d] must be finite, got %g", name, i, j, v))
			}
		}
	}
	m, err := spectral.FromRows(rows)
	if err != nil {
		return nil, gaperrors.WrapWithMessage(err, gaperrors.Shape,
			fmt.Sprintf("matrix %s is malformed", name))
	}
	return m, nil
}
