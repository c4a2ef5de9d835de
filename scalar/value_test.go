package scalar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueJSON(t *testing.T) {
	type record struct {
		Coverage Value[float64] `json:"coverage"`
		MMTag    Value[bool]    `json:"mmTag"`
		Study    Value[string]  `json:"study"`
	}

	for _, v := range []struct {
		In       record
		Expected string
	}{
		{record{}, `{"coverage":"Unspecified","mmTag":"Unspecified","study":"Unspecified"}`},
		{record{NA[float64](), NA[bool](), NA[string]()}, `{"coverage":"N/A","mmTag":"N/A","study":"N/A"}`},
		{record{Of(31.5), Of(true), Of("HPRC <R2>")}, `{"coverage":31.5,"mmTag":true,"study":"HPRC <R2>"}`},
	} {
		b, err := json.Marshal(v.In)
		require.NoError(t, err)
		assert.JSONEq(t, v.Expected, string(b))

		var back record
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, v.In, back)
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "true", Of(true).String())
	assert.Equal(t, "N/A", NA[bool]().String())
	assert.Equal(t, "Unspecified", Unspecified[bool]().String())
	assert.Equal(t, "12", Of(12.0).String())
	assert.Equal(t, "0.125", Of(0.125).String())
}

func TestFormatNumber(t *testing.T) {
	for _, v := range []struct {
		In       float64
		Expected string
	}{
		{0, "0"},
		{1000, "1000"},
		{-2.5, "-2.5"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{1.5e-10, "1.5e-10"},
	} {
		assert.Equal(t, v.Expected, FormatNumber(v.In), v.In)
	}
}
