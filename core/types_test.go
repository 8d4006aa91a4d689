package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"int", IntValue(400), "400"},
		{"integral float", FloatValue(85), "85.0"},
		{"float", FloatValue(2.8), "2.8"},
		{"rational", RationalValue(28, 10), "2.8"},
		{"integral rational", RationalValue(85, 1), "85.0"},
		{"small rational", RationalValue(1, 30), "0.03333333333333333"},
		{"zero denominator", RationalValue(1, 0), "nan"},
		{"string", StringValue("Canon"), "Canon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueFloat64(t *testing.T) {
	f, ok := RationalValue(1, 4).Float64()
	assert.True(t, ok)
	assert.Equal(t, 0.25, f)

	f, ok = IntValue(3).Float64()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = RationalValue(1, 0).Float64()
	assert.False(t, ok)

	_, ok = StringValue("2.8").Float64()
	assert.False(t, ok)
}
