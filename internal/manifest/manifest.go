// Package manifest loads and validates gapcheck case files. A manifest is a
// single JSON or YAML object describing one verification case; the case type
// selects which fields are required. Validation is eager and closed: missing
// required fields, NaN or out-of-range values, empty ledgers, and malformed
// matrices are all rejected at load time, before any evaluation happens.
package manifest

import (
	"fmt"
	"math"

	"github.com/raveheart1/gapcheck/internal/spectral"
)

// CaseType identifies which check a manifest describes.
type CaseType string

const (
	// TypeCoreBanach is the direct contraction bound gamma*(1+t*c_P).
	TypeCoreBanach CaseType = "core_banach"
	// TypeLedger is the discretized multi-step bound, one check per step.
	TypeLedger CaseType = "ledger"
	// TypeCoupledStream is the coupled-stream stability bound.
	TypeCoupledStream CaseType = "coupled_stream"
	// TypeGammaV is the spectral-norm bound ||R·Γ||₂.
	TypeGammaV CaseType = "gammaV"
)

// ValidTypes lists all recognized case types.
var ValidTypes = []CaseType{TypeCoreBanach, TypeLedger, TypeCoupledStream, TypeGammaV}

// ParseCaseType parses a string into a CaseType.
// Returns an error if the value is not a recognized type.
func ParseCaseType(s string) (CaseType, error) {
	t := CaseType(s)
	for _, valid := range ValidTypes {
		if t == valid {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid case type %q: valid options are core_banach, ledger, coupled_stream, gammaV", s)
}

// CoreParams holds the core_banach inputs.
type CoreParams struct {
	Gamma float64
	T     float64
}

// Step is one entry of a ledger case. CP is nil when the step inherits the
// manifest-level c_P.
type Step struct {
	Gamma    float64
	T        float64
	DeltaTau float64
	CP       *float64
}

// StreamParams holds the coupled_stream inputs, all strictly positive.
type StreamParams struct {
	Kappa1 float64
	Kappa2 float64
	Eta1   float64
	Eta2   float64
}

// Case is a validated verification case. Exactly one of Core, Steps, Stream,
// and the R/Gamma pair is populated, matching Type. Optional fields are
// pointers so "absent" and "zero" stay distinguishable; a Case is never
// mutated after Load returns it.
type Case struct {
	Type CaseType

	// Eps is the explicit threshold from the manifest (eps or epsilon key).
	Eps *float64
	// Tol is the explicit comparison tolerance from the manifest.
	Tol *float64
	// CP is the manifest-level projection norm, shared by core and ledger
	// steps that do not carry their own.
	CP *float64

	// Derived-threshold inputs: when Eps is absent and all four are present,
	// the effective threshold is alpha^beta * exp(-sigma*delta_tau_min).
	Alpha       *float64
	Beta        *float64
	Sigma       *float64
	DeltaTauMin *float64

	Core   *CoreParams
	Steps  []Step
	Stream *StreamParams

	// R and Gamma are the gammaV factor matrices, inner dimensions already
	// verified compatible.
	R     *spectral.Dense
	Gamma *spectral.Dense
}

// nonNegative validates a required field that must be a finite value >= 0.
func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("field %q must be a finite number, got %g", name, v)
	}
	if v < 0 {
		return fmt.Errorf("field %q must be nonnegative, got %g", name, v)
	}
	return nil
}

// strictlyPositive validates a required field that must be finite and > 0.
func strictlyPositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("field %q must be a finite number, got %g", name, v)
	}
	if v <= 0 {
		return fmt.Errorf("field %q must be strictly positive, got %g", name, v)
	}
	return nil
}

// validate checks the variant-specific constraints after decoding.
func (c *Case) validate() error {
	if c.CP != nil {
		if err := nonNegative("c_P", *c.CP); err != nil {
			return err
		}
	}
	if c.Eps != nil {
		if err := nonNegative("eps", *c.Eps); err != nil {
			return err
		}
	}
	if c.Tol != nil {
		if err := nonNegative("tol", *c.Tol); err != nil {
			return err
		}
	}
	if c.Sigma != nil {
		if err := nonNegative("sigma", *c.Sigma); err != nil {
			return err
		}
	}
	if c.DeltaTauMin != nil {
		if err := nonNegative("delta_tau_min", *c.DeltaTauMin); err != nil {
			return err
		}
	}

	switch c.Type {
	case TypeCoreBanach:
		if c.Core == nil {
			return fmt.Errorf("core_banach case requires a core_params object")
		}
		if err := nonNegative("core_params.gamma", c.Core.Gamma); err != nil {
			return err
		}
		return nonNegative("core_params.t", c.Core.T)

	case TypeLedger:
		if len(c.Steps) == 0 {
			return fmt.Errorf("ledger case requires a non-empty steps array")
		}
		for i, s := range c.Steps {
			if err := nonNegative(fmt.Sprintf("steps[%d].gamma", i), s.Gamma); err != nil {
				return err
			}
			if err := nonNegative(fmt.Sprintf("steps[%d].t", i), s.T); err != nil {
				return err
			}
			if err := nonNegative(fmt.Sprintf("steps[%d].delta_tau", i), s.DeltaTau); err != nil {
				return err
			}
			if s.CP != nil {
				if err := nonNegative(fmt.Sprintf("steps[%d].c_P", i), *s.CP); err != nil {
					return err
				}
			}
		}
		return nil

	case TypeCoupledStream:
		if c.Stream == nil {
			return fmt.Errorf("coupled_stream case requires a stream_params object")
		}
		if err := strictlyPositive("stream_params.kappa1", c.Stream.Kappa1); err != nil {
			return err
		}
		if err := strictlyPositive("stream_params.kappa2", c.Stream.Kappa2); err != nil {
			return err
		}
		if err := strictlyPositive("stream_params.eta1", c.Stream.Eta1); err != nil {
			return err
		}
		return strictlyPositive("stream_params.eta2", c.Stream.Eta2)

	case TypeGammaV:
		if c.R == nil || c.Gamma == nil {
			return fmt.Errorf("gammaV case requires both R and Gamma matrices")
		}
		return nil

	default:
		return fmt.Errorf("unknown case type %q", c.Type)
	}
}
