package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsString(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	assert.Equal(t, "value", GetEnvAsString("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnvAsString("TEST_STR_MISSING", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, GetEnvAsInt("TEST_INT", 7))

	t.Setenv("TEST_INT_BAD", "not a number")
	assert.Equal(t, 7, GetEnvAsInt("TEST_INT_BAD", 7))

	assert.Equal(t, 7, GetEnvAsInt("TEST_INT_MISSING", 7))
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "2.5")
	assert.Equal(t, 2.5, GetEnvAsFloat("TEST_FLOAT", 1.0))
	assert.Equal(t, 1.0, GetEnvAsFloat("TEST_FLOAT_MISSING", 1.0))
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "30s")
	assert.Equal(t, 30*time.Second, GetEnvAsDuration("TEST_DUR", time.Minute))

	t.Setenv("TEST_DUR_BAD", "soon")
	assert.Equal(t, time.Minute, GetEnvAsDuration("TEST_DUR_BAD", time.Minute))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, GetEnvAsBool("TEST_BOOL", false))

	t.Setenv("TEST_BOOL_OFF", "0")
	assert.False(t, GetEnvAsBool("TEST_BOOL_OFF", true))

	assert.True(t, GetEnvAsBool("TEST_BOOL_MISSING", true))
}
