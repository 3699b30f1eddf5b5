// server/internal/models/money_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyAddIsExact(t *testing.T) {
	// 0.1 + 0.2 famously does not make 0.3 in float64.
	a, err := NewMoney("0.1")
	require.NoError(t, err)
	b, err := NewMoney("0.2")
	require.NoError(t, err)

	want, err := NewMoney("0.3")
	require.NoError(t, err)
	assert.True(t, a.Add(b).Equal(want))
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.5", "1234.50"},
		{"0", "0.00"},
		{"99.999", "100.00"},
		{"-3", "-3.00"},
	}
	for _, tt := range tests {
		m, err := NewMoney(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, m.String())
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m, err := NewMoney("155.50")
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"155.50"`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(m))
}

func TestMoneyUnmarshalEmptyIsZero(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`""`), &m))
	zero, err := NewMoney("0")
	require.NoError(t, err)
	assert.True(t, m.Equal(zero))
}

func TestNewMoneyRejectsGarbage(t *testing.T) {
	_, err := NewMoney("twelve dollars")
	assert.Error(t, err)
}
