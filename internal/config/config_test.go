package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_STRING_VAR", "hello")
	assert.Equal(t, "hello", getEnv("TEST_STRING_VAR", "default"))
	assert.Equal(t, "default", getEnv("TEST_MISSING_VAR", "default"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("TEST_INT_VAR", "42")
	assert.Equal(t, 42, getInt("TEST_INT_VAR", 7))

	t.Setenv("TEST_INT_BAD", "not-a-number")
	assert.Equal(t, 7, getInt("TEST_INT_BAD", 7))

	assert.Equal(t, 7, getInt("TEST_INT_MISSING", 7))
}

func TestGetBool(t *testing.T) {
	t.Setenv("TEST_BOOL_TRUE", "true")
	assert.True(t, getBool("TEST_BOOL_TRUE", false))

	t.Setenv("TEST_BOOL_ONE", "1")
	assert.True(t, getBool("TEST_BOOL_ONE", false))

	t.Setenv("TEST_BOOL_YES", "yes")
	assert.True(t, getBool("TEST_BOOL_YES", false))

	t.Setenv("TEST_BOOL_FALSE", "false")
	assert.False(t, getBool("TEST_BOOL_FALSE", true))

	assert.True(t, getBool("TEST_BOOL_MISSING", true))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("TEST_DUR_SUFFIX", "30s")
	assert.Equal(t, 30*time.Second, getDuration("TEST_DUR_SUFFIX", time.Minute))

	// 단위 없는 숫자는 초로 간주
	t.Setenv("TEST_DUR_BARE", "15")
	assert.Equal(t, 15*time.Second, getDuration("TEST_DUR_BARE", time.Minute))

	t.Setenv("TEST_DUR_MINUTES", "2m")
	assert.Equal(t, 2*time.Minute, getDuration("TEST_DUR_MINUTES", time.Second))

	t.Setenv("TEST_DUR_BAD", "soon")
	assert.Equal(t, time.Minute, getDuration("TEST_DUR_BAD", time.Minute))

	assert.Equal(t, time.Minute, getDuration("TEST_DUR_MISSING", time.Minute))
}
