// internal/models/common_test.go
package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericPrice(t *testing.T) {
	cases := []struct {
		name  string
		in    interface{}
		want  float64
		valid bool
	}{
		{"float", 9.99, 9.99, true},
		{"int32", int32(4), 4, true},
		{"int64", int64(12), 12, true},
		{"numeric text", "3.50", 3.5, true},
		{"padded text", " 7 ", 7, true},
		{"garbage text", "bad", 0, false},
		{"empty text", "", 0, false},
		{"nil", nil, 0, false},
		{"nan", math.NaN(), 0, false},
		{"nan text", "NaN", 0, false},
		{"bool", true, 1, true},
		{"slice", []string{"1"}, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NumericPrice(tc.in)
			assert.Equal(t, tc.valid, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleVendor.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
