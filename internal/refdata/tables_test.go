package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	// NCCI pairs index comprehensive -> components.
	assert.Contains(t, tables.NCCIPairs, "99213")
	assert.Contains(t, tables.NCCIPairs["99213"], "36415")

	for _, m := range []string{"59", "XE", "XP", "XS", "XU"} {
		assert.Contains(t, tables.SeparatingModifiers, m)
	}

	assert.Contains(t, tables.TimedTherapyCodes, "97110")
	assert.Contains(t, tables.TimedTherapyCodes, "97112")
	assert.Contains(t, tables.PreventiveCodes, "99395")
	assert.Contains(t, tables.EMVisitCodes, "99213")
	assert.Contains(t, tables.MinorProcedureCodes, "20610")

	assert.Positive(t, tables.DrugUnitCeilings["J1885"])

	// POS 23 is both a facility and the emergency department.
	assert.Contains(t, tables.FacilityPOS, "23")
	assert.Contains(t, tables.EmergencyPOS, "23")
	assert.Contains(t, tables.OfficePOS, "11")
	assert.NotContains(t, tables.FacilityPOS, "11")
}

func TestDefaultSharedInstance(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b, "Default must load once and share the instance")
}
