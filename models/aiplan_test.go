package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	cases := map[string]float64{
		`120`:             120,
		`99.5`:            99.5,
		`"150"`:           150,
		`"$2,500"`:        2500,
		`"2000-2500 USD"`: 2000,
		`"about 80 EUR"`:  80,
		`"free"`:          0,
		`null`:            0,
		`true`:            0,
	}
	for in, want := range cases {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(in), &a), in)
		assert.EqualValues(t, want, a, in)
	}
}

func TestDayNumberUnmarshal(t *testing.T) {
	cases := map[string]int{
		`1`:       1,
		`2.0`:     2,
		`"3"`:     3,
		`"Day 4"`: 4,
		`"first"`: 0,
	}
	for in, want := range cases {
		var d DayNumber
		require.NoError(t, json.Unmarshal([]byte(in), &d), in)
		assert.EqualValues(t, want, d, in)
	}
}

func TestAmountEncodesAsNumber(t *testing.T) {
	out, err := json.Marshal(EstimatedCosts{Activities: 100, Meals: 12.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"activities":100,"accommodation":0,"meals":12.5,"transportation":0}`, string(out))
}
