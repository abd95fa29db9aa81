package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "")
	assert.Equal(t, "fallback", GetEnvString("TEST_STRING", "fallback"))

	t.Setenv("TEST_STRING", "value")
	assert.Equal(t, "value", GetEnvString("TEST_STRING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"unset", "", 10},
		{"valid", "25", 25},
		{"surrounding spaces", " 7 ", 7},
		{"negative", "-3", -3},
		{"trailing garbage", "12abc", 10},
		{"float", "1.5", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.raw)
			assert.Equal(t, tt.want, GetEnvInt("TEST_INT", 10))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", true},
		{"false", false},
		{"0", false},
		{"TRUE", true},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.raw)
			assert.Equal(t, tt.want, GetEnvBool("TEST_BOOL", true))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "90")
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION", time.Second))
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"unset", "", 10},
		{"integer", "4", 4},
		{"fraction", "2.5", 2.5},
		{"zero", "0", 0},
		{"invalid", "fast", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_FLOAT", tt.raw)
			assert.InDelta(t, tt.want, GetEnvFloat("TEST_FLOAT", 10), 1e-9)
		})
	}
}
