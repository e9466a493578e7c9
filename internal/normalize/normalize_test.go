package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyng-health/billaudit/internal/model"
)

func ptrInt64(v int64) *int64 { return &v }

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "99213", "99213"},
		{"lowercase hcpcs", "j1885", "J1885"},
		{"whitespace", "  36415 ", "36415"},
		{"punctuation", "99-213", "99213"},
		{"empty", "   ", ""},
		{"only punctuation", "--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.in))
		})
	}
}

func TestModifiers(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"uppercased", []string{"tc", "26"}, []string{"TC", "26"}},
		{"dedup keeps first order", []string{"59", "59", "25"}, []string{"59", "25"}},
		{"empties dropped", []string{" ", "", "XE"}, []string{"XE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Modifiers(tt.in))
		})
	}
}

func TestLineDefaults(t *testing.T) {
	raw := model.PricedLine{
		Code:        " 99213 ",
		CodeSystem:  "cpt",
		Description: "Office  visit,   established",
		Modifiers:   []string{"25", ""},
	}

	l := Line(raw)

	assert.Equal(t, "99213", l.Code)
	assert.Equal(t, "CPT", l.CodeSystem)
	assert.Equal(t, "Office visit, established", l.Description)
	assert.Equal(t, []string{"25"}, l.Modifiers)
	assert.Equal(t, model.DocTypeUnknown, l.DocType)

	require.NotNil(t, l.Units)
	assert.Equal(t, int64(1), *l.Units, "missing units default to 1")

	assert.Nil(t, l.ChargeCents, "missing money stays unknown, not zero")
	assert.Nil(t, l.PatientRespCents)
}

func TestLineCopiesMoney(t *testing.T) {
	charge := int64(15000)
	raw := model.PricedLine{Code: "99213", ChargeCents: &charge, Units: ptrInt64(2)}

	l := Line(raw)

	require.NotNil(t, l.ChargeCents)
	assert.Equal(t, int64(15000), *l.ChargeCents)
	assert.NotSame(t, raw.ChargeCents, l.ChargeCents, "normalized line must not alias caller memory")
	assert.Equal(t, int64(2), *l.Units)
}

func TestLinesPreservesOrder(t *testing.T) {
	raw := []model.PricedLine{
		{Code: "b"},
		{Code: "a"},
		{Code: "c"},
	}

	out := Lines(raw)

	require.Len(t, out, 3)
	assert.Equal(t, "B", out[0].Code)
	assert.Equal(t, "A", out[1].Code)
	assert.Equal(t, "C", out[2].Code)
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"zero", 0, "$0.00"},
		{"small", 150, "$1.50"},
		{"grouping", 1234567, "$12,345.67"},
		{"negative", -2500, "-$25.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCents(tt.cents))
		})
	}
}
