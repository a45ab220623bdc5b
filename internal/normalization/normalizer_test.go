package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnum string

const (
	testAlpha testEnum = "alpha"
	testBeta  testEnum = "beta"
)

func newTestEnum() *Enum[testEnum] {
	return NewEnum("test mode", map[string]testEnum{
		"alpha": testAlpha,
		"Beta":  testBeta,
	}, testAlpha)
}

func TestEnum_Normalize(t *testing.T) {
	e := newTestEnum()
	tests := []struct {
		name     string
		input    string
		expected testEnum
	}{
		{"exact match", "alpha", testAlpha},
		{"case insensitive", "BETA", testBeta},
		{"with spaces", "  beta  ", testBeta},
		{"invalid input falls back", "gamma", testAlpha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Normalize(tt.input))
		})
	}
}

func TestEnum_Parse(t *testing.T) {
	e := newTestEnum()

	v, err := e.Parse(" Alpha ")
	require.NoError(t, err)
	assert.Equal(t, testAlpha, v)

	_, err = e.Parse("gamma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test mode")
	assert.Contains(t, err.Error(), "[alpha beta]")
}

func TestEnum_ValidAndKeys(t *testing.T) {
	e := newTestEnum()
	assert.True(t, e.Valid(testBeta))
	assert.False(t, e.Valid(testEnum("gamma")))
	assert.Equal(t, []string{"alpha", "beta"}, e.ValidKeys())
}
