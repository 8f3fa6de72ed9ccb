package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCaseType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    CaseType
		wantErr bool
	}{
		"core_banach":    {input: "core_banach", want: TypeCoreBanach},
		"ledger":         {input: "ledger", want: TypeLedger},
		"coupled_stream": {input: "coupled_stream", want: TypeCoupledStream},
		"gammaV":         {input: "gammaV", want: TypeGammaV},
		"unknown":        {input: "banach", wantErr: true},
		"empty":          {input: "", wantErr: true},
		"wrong case":     {input: "GammaV", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCaseType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_CoreBanach(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "core.json", `{
		"type": "core_banach",
		"core_params": {"gamma": 0.5, "t": 1.0},
		"c_P": 0.4,
		"eps": 1.0
	}`)

	c, err := Load(path, TypeCoreBanach)
	require.NoError(t, err)
	require.NotNil(t, c.Core)
	assert.Equal(t, 0.5, c.Core.Gamma)
	assert.Equal(t, 1.0, c.Core.T)
	require.NotNil(t, c.CP)
	assert.Equal(t, 0.4, *c.CP)
	require.NotNil(t, c.Eps)
	assert.Equal(t, 1.0, *c.Eps)
}

func TestLoad_CoreBanachYAML(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "core.yml", `
type: core_banach
core_params:
  gamma: 0.5
  t: 0.0
c_P: 0.4
`)

	c, err := Load(path, TypeCoreBanach)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Core.T)
	assert.Nil(t, c.Eps)
}

func TestLoad_EpsilonAlias(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "core.json", `{
		"core_params": {"gamma": 0.1, "t": 0.1},
		"c_P": 1.0,
		"epsilon": 0.75
	}`)

	c, err := Load(path, TypeCoreBanach)
	require.NoError(t, err)
	require.NotNil(t, c.Eps)
	assert.Equal(t, 0.75, *c.Eps)
}

func TestLoad_Ledger(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "ledger.json", `{
		"type": "ledger",
		"sigma": 0.2,
		"c_P": 0.1,
		"delta_tau_min": 0.5,
		"steps": [
			{"gamma": 0.1, "t": 1.0, "delta_tau": 1.0},
			{"gamma": 0.2, "t": 1.0},
			{"gamma": 0.3, "t": 1.0, "c_P": 0.9, "delta_tau": 2.0}
		]
	}`)

	c, err := Load(path, TypeLedger)
	require.NoError(t, err)
	require.Len(t, c.Steps, 3)
	assert.Equal(t, 1.0, c.Steps[0].DeltaTau)
	// Missing delta_tau inherits delta_tau_min.
	assert.Equal(t, 0.5, c.Steps[1].DeltaTau)
	assert.Nil(t, c.Steps[1].CP)
	require.NotNil(t, c.Steps[2].CP)
	assert.Equal(t, 0.9, *c.Steps[2].CP)
}

func TestLoad_Rejections(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name     string
		content  string
		caseType CaseType
		category gaperrors.ErrorCategory
	}{
		"empty ledger": {
			name:     "l.json",
			content:  `{"type": "ledger", "c_P": 0.1, "steps": []}`,
			caseType: TypeLedger,
			category: gaperrors.Input,
		},
		"missing core_params": {
			name:     "c.json",
			content:  `{"type": "core_banach", "c_P": 0.1}`,
			caseType: TypeCoreBanach,
			category: gaperrors.Input,
		},
		"negative gamma": {
			name:     "c.json",
			content:  `{"core_params": {"gamma": -0.5, "t": 1}, "c_P": 0.1}`,
			caseType: TypeCoreBanach,
			category: gaperrors.Input,
		},
		"negative eta": {
			name:     "s.json",
			content:  `{"stream_params": {"kappa1": 1, "kappa2": 1, "eta1": -0.1, "eta2": 0.1}}`,
			caseType: TypeCoupledStream,
			category: gaperrors.Input,
		},
		"zero kappa": {
			name:     "s.json",
			content:  `{"stream_params": {"kappa1": 0, "kappa2": 1, "eta1": 0.1, "eta2": 0.1}}`,
			caseType: TypeCoupledStream,
			category: gaperrors.Input,
		},
		"type mismatch": {
			name:     "c.json",
			content:  `{"type": "ledger", "core_params": {"gamma": 0.5, "t": 1}}`,
			caseType: TypeCoreBanach,
			category: gaperrors.Input,
		},
		"malformed json": {
			name:     "bad.json",
			content:  `{"type": `,
			caseType: TypeCoreBanach,
			category: gaperrors.Manifest,
		},
		"ragged matrix": {
			name:     "g.json",
			content:  `{"R": [[1, 2], [3]], "Gamma": [[1], [1]]}`,
			caseType: TypeGammaV,
			category: gaperrors.Shape,
		},
		"inner dimension mismatch": {
			name:     "g.json",
			content:  `{"R": [[1, 2, 3]], "Gamma": [[1, 0], [0, 1]]}`,
			caseType: TypeGammaV,
			category: gaperrors.Shape,
		},
		"missing Gamma": {
			name:     "g.json",
			content:  `{"R": [[1, 2]]}`,
			caseType: TypeGammaV,
			category: gaperrors.Input,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeManifest(t, tt.name, tt.content)
			_, err := Load(path, tt.caseType)
			require.Error(t, err)
			cliErr := gaperrors.AsCLIError(err)
			require.NotNil(t, cliErr, "expected a categorized error, got %v", err)
			assert.Equal(t, tt.category, cliErr.Category)
		})
	}
}

func TestLoad_GammaV(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "g.json", `{
		"type": "gammaV",
		"R": [[2, 0], [0, 1]],
		"Gamma": [[1, 0], [0, 0.5]],
		"eps": 2.5
	}`)

	c, err := Load(path, TypeGammaV)
	require.NoError(t, err)
	require.NotNil(t, c.R)
	require.NotNil(t, c.Gamma)
	assert.Equal(t, 2, c.R.Rows())
	assert.Equal(t, 2, c.Gamma.Cols())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), TypeCoreBanach)
	require.Error(t, err)
	cliErr := gaperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, gaperrors.Manifest, cliErr.Category)
}

func TestLoad_DerivedThresholdFields(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "core.json", `{
		"core_params": {"gamma": 0.5, "t": 1},
		"c_P": 0.4,
		"alpha": 0.5, "beta": 2, "sigma": 0.0, "delta_tau_min": 0.0
	}`)

	c, err := Load(path, TypeCoreBanach)
	require.NoError(t, err)
	assert.Nil(t, c.Eps)
	require.NotNil(t, c.Alpha)
	assert.Equal(t, 0.5, *c.Alpha)
	require.NotNil(t, c.Beta)
	assert.Equal(t, 2.0, *c.Beta)
}
