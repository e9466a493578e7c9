package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyng-health/billaudit/internal/model"
)

func TestFacilityFeeSurprise(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		{Code: "99213", DateOfService: "2026-01-15", PlaceOfService: "11", ChargeCents: cents(15000)},
		{Code: "99213", DateOfService: "2026-01-15", PlaceOfService: "22", ChargeCents: cents(45000)},
	})

	dets := evalFacilityFeeSurprise(in)
	require.Len(t, dets, 1)

	ev, ok := dets[0].Evidence.(model.SiteOfServiceEvidence)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, ev.LineRefs)
	assert.Equal(t, []string{"11", "22"}, ev.Places)
}

func TestFacilityFeeSurpriseNegatives(t *testing.T) {
	tests := []struct {
		name  string
		lines []model.PricedLine
	}{
		{
			"same class twice",
			[]model.PricedLine{
				{Code: "99213", DateOfService: "2026-01-15", PlaceOfService: "21"},
				{Code: "99213", DateOfService: "2026-01-15", PlaceOfService: "22"},
			},
		},
		{
			"different codes",
			[]model.PricedLine{
				{Code: "99213", DateOfService: "2026-01-15", PlaceOfService: "11"},
				{Code: "99214", DateOfService: "2026-01-15", PlaceOfService: "22"},
			},
		},
		{
			"missing place of service",
			[]model.PricedLine{
				{Code: "99213", DateOfService: "2026-01-15"},
				{Code: "99213", DateOfService: "2026-01-15", PlaceOfService: "22"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, evalFacilityFeeSurprise(testInput(t, tt.lines)))
		})
	}
}

func TestNSAEmergencyProtection(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		// 60% of the charge: above the 50% default ceiling.
		{Code: "99283", PlaceOfService: "23", ChargeCents: cents(100000), PatientRespCents: cents(60000)},
	})

	dets := evalNSAEmergencyProtection(in)
	require.Len(t, dets, 1)

	ev, ok := dets[0].Evidence.(model.CostShareEvidence)
	require.True(t, ok)
	assert.Equal(t, []int{0}, ev.LineRefs)
	assert.Equal(t, int64(100000), ev.ChargeCents)
	assert.Equal(t, int64(60000), ev.PatientRespCents)
}

func TestNSAEmergencyProtectionNegatives(t *testing.T) {
	tests := []struct {
		name  string
		lines []model.PricedLine
	}{
		{
			"at the threshold exactly",
			[]model.PricedLine{
				{Code: "99283", PlaceOfService: "23", ChargeCents: cents(100000), PatientRespCents: cents(50000)},
			},
		},
		{
			"non-emergency place of service",
			[]model.PricedLine{
				{Code: "99283", PlaceOfService: "11", ChargeCents: cents(100000), PatientRespCents: cents(60000)},
			},
		},
		{
			"unknown patient responsibility is skipped",
			[]model.PricedLine{
				{Code: "99283", PlaceOfService: "23", ChargeCents: cents(100000)},
			},
		},
		{
			"unknown charge is skipped",
			[]model.PricedLine{
				{Code: "99283", PlaceOfService: "23", PatientRespCents: cents(60000)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, evalNSAEmergencyProtection(testInput(t, tt.lines)))
		})
	}
}

func TestNSAEmergencyProtectionConfigurableFraction(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		{Code: "99283", PlaceOfService: "23", ChargeCents: cents(100000), PatientRespCents: cents(30000)},
	})
	in.Cfg.NSAEmergencyCostShareFraction = 0.25

	assert.Len(t, evalNSAEmergencyProtection(in), 1)
}
