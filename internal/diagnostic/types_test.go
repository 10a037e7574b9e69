package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	assert.False(t, d.HasErrors())
	require.NoError(t, d.Error())
	assert.Empty(t, d.All())

	d.AddWarning("many_workers", "workers exceed CPUs", "p.yaml", "workers")
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Error())

	d.AddError("unknown_style", `unknown style "csv"`, "p.yaml", "style")
	d.AddError("empty_field", "empty key", "", "")

	assert.True(t, d.HasErrors())
	require.Error(t, d.Error())
	assert.Equal(t,
		`[p.yaml] style: [unknown_style] unknown style "csv"; [empty_field] empty key`,
		d.Error().Error())

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityError, all[1].Severity)
	assert.Equal(t, SeverityWarning, all[2].Severity)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(0).String())
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "workers: [c] m", Diagnostic{Code: "c", Message: "m", Key: "workers"}.String())
	assert.Equal(t, "[p.yaml]: m", Diagnostic{Message: "m", Source: "p.yaml"}.String())
}
