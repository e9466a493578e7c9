package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyng-health/billaudit/internal/model"
)

func TestMathErrorBilledTotal(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		{Code: "99213", ChargeCents: cents(15000)},
		{Code: "85025", ChargeCents: cents(12000)},
	})
	in.Summary.Totals.BilledCents = 30000

	dets := evalMathErrorBilledTotal(in)
	require.Len(t, dets, 1)

	ev, ok := dets[0].Evidence.(model.MathEvidence)
	require.True(t, ok)
	assert.Equal(t, int64(27000), ev.Calculated)
	assert.Equal(t, int64(30000), ev.Reported)
	assert.Equal(t, "billed", ev.Field)
	assert.Equal(t, []int{0, 1}, ev.LineRefs)
}

func TestMathErrorBilledTotalNegatives(t *testing.T) {
	t.Run("totals reconcile", func(t *testing.T) {
		in := testInput(t, []model.PricedLine{
			{Code: "99213", ChargeCents: cents(15000)},
			{Code: "85025", ChargeCents: cents(12000)},
		})
		in.Summary.Totals.BilledCents = 27000
		assert.Empty(t, evalMathErrorBilledTotal(in))
	})

	t.Run("unknown line charge disables the rule", func(t *testing.T) {
		in := testInput(t, []model.PricedLine{
			{Code: "99213", ChargeCents: cents(15000)},
			{Code: "85025"},
		})
		in.Summary.Totals.BilledCents = 30000
		assert.Empty(t, evalMathErrorBilledTotal(in))
	})

	t.Run("no lines", func(t *testing.T) {
		in := testInput(t, nil)
		in.Summary.Totals.BilledCents = 30000
		assert.Empty(t, evalMathErrorBilledTotal(in))
	})

	t.Run("within tolerance", func(t *testing.T) {
		in := testInput(t, []model.PricedLine{
			{Code: "99213", ChargeCents: cents(15000)},
		})
		in.Summary.Totals.BilledCents = 15050
		in.Cfg.MathToleranceCents = 100
		assert.Empty(t, evalMathErrorBilledTotal(in))
	})
}

func TestMathErrorPatientTotal(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		{Code: "99213", PatientRespCents: cents(2000), ChargeCents: cents(15000)},
		{Code: "85025", PatientRespCents: cents(1000), ChargeCents: cents(12000)},
	})
	in.Summary.Totals.PatientRespCents = 5000

	dets := evalMathErrorPatientTotal(in)
	require.Len(t, dets, 1)

	ev := dets[0].Evidence.(model.MathEvidence)
	assert.Equal(t, int64(3000), ev.Calculated)
	assert.Equal(t, int64(5000), ev.Reported)
	assert.Equal(t, "patient_resp", ev.Field)
}

func TestMathErrorPatientTotalZeroReportedIsSilent(t *testing.T) {
	// Many bills simply omit a patient total; zero means "not stated".
	in := testInput(t, []model.PricedLine{
		{Code: "99213", PatientRespCents: cents(2000)},
	})
	in.Summary.Totals.PatientRespCents = 0
	assert.Empty(t, evalMathErrorPatientTotal(in))
}

func TestNonProviderAdminFee(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		{Description: "Statement Processing Fee", ChargeCents: cents(1500)},
		{Code: "99213", Description: "Office visit", ChargeCents: cents(15000)},
		{Description: "Paper statement surcharge", ChargeCents: cents(300)},
	})

	dets := evalNonProviderAdminFee(in)
	require.Len(t, dets, 1)

	ev, ok := dets[0].Evidence.(model.KeywordEvidence)
	require.True(t, ok)
	assert.Equal(t, []int{0, 2}, ev.LineRefs)
	assert.Equal(t, []string{"Statement Processing Fee", "Paper statement surcharge"}, ev.Descriptions)
}

func TestNonProviderAdminFeeNoMatch(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		{Code: "99213", Description: "Office visit", ChargeCents: cents(15000)},
	})
	assert.Empty(t, evalNonProviderAdminFee(in))
}

func TestAllowedExceedsCharge(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		{Code: "80048", ChargeCents: cents(2000), AllowedCents: cents(5000)},
		{Code: "80053", ChargeCents: cents(5000), AllowedCents: cents(5000)}, // equal is fine
		{Code: "80061", AllowedCents: cents(5000)},                           // unknown charge skipped
	})

	dets := evalAllowedExceedsCharge(in)
	require.Len(t, dets, 1)

	ev := dets[0].Evidence.(model.AmountAnomalyEvidence)
	assert.Equal(t, []int{0}, ev.LineRefs)
	assert.Equal(t, int64(5000), ev.AllowedCents)
}

func TestMissingItemizedBill(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		{Description: "Hospital services", ChargeCents: cents(150000)},
	})

	dets := evalMissingItemizedBill(in)
	require.Len(t, dets, 1)

	ev, ok := dets[0].Evidence.(model.ConcentrationEvidence)
	require.True(t, ok)
	assert.Equal(t, 1, ev.LineCount)
	assert.Equal(t, int64(150000), ev.TotalChargeCents)
	assert.Equal(t, []int{0}, ev.LineRefs)
}

func TestMissingItemizedBillNegatives(t *testing.T) {
	tests := []struct {
		name  string
		lines []model.PricedLine
	}{
		{
			"below the cutoff",
			[]model.PricedLine{
				{Description: "Hospital services", ChargeCents: cents(90000)},
			},
		},
		{
			"itemized across many lines",
			[]model.PricedLine{
				{Code: "99213", ChargeCents: cents(80000)},
				{Code: "85025", ChargeCents: cents(80000)},
			},
		},
		{
			"no known charges",
			[]model.PricedLine{
				{Description: "Hospital services"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, evalMissingItemizedBill(testInput(t, tt.lines)))
		})
	}
}

func TestLowConfidenceHighValue(t *testing.T) {
	in := testInput(t, []model.PricedLine{
		{Code: "99213", LowConf: true, ChargeCents: cents(99000)},
		{Code: "85025", LowConf: true, ChargeCents: cents(2000)},                        // cheap, ignored
		{Code: "80048", LowConf: true, VendorConsensus: true, ChargeCents: cents(99000)}, // consensus, trusted
		{Code: "80053", ChargeCents: cents(99000)},                                      // confident read
	})

	dets := evalLowConfidenceHighValue(in)
	require.Len(t, dets, 1)

	ev, ok := dets[0].Evidence.(model.ConfidenceEvidence)
	require.True(t, ok)
	assert.Equal(t, []int{0}, ev.LineRefs)
	assert.Equal(t, int64(99000), ev.TotalChargeCents)
}
