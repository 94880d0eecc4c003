package impact_test

import (
	"domainimpact/internal/impact"
	"domainimpact/pkg/domain"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShapeEmpty(t *testing.T) {
	for _, impacted := range [][]domain.ImpactedDomain{nil, {}} {
		out := impact.Shape(impacted)
		require.False(t, out.HasChanges)
		require.Equal(t, "[]", out.Domains)
		require.Equal(t, `{"include":[]}`, out.Matrix)
	}
}

func TestEncodeMatrixEscapesStrings(t *testing.T) {
	impacted := []domain.ImpactedDomain{
		{ReleaseName: `we"ird`, ConfigPath: `configs\quoted "x".yml`},
	}

	var decoded struct {
		Include []map[string]string `json:"include"`
	}
	require.NoError(t, json.Unmarshal([]byte(impact.EncodeMatrix(impacted)), &decoded))
	require.Equal(t, []map[string]string{
		{"domain": `we"ird`, "release-config": `configs\quoted "x".yml`},
	}, decoded.Include)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(impact.EncodeDomains(impacted)), &names))
	require.Equal(t, []string{`we"ird`}, names)
}
