package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamIntTypesAndFallback(t *testing.T) {
	params := map[string]any{"a": 3, "b": int64(4), "c": float64(5), "d": "nope"}
	assert.Equal(t, 3, paramInt(params, "a", 0))
	assert.Equal(t, 4, paramInt(params, "b", 0))
	assert.Equal(t, 5, paramInt(params, "c", 0))
	assert.Equal(t, 9, paramInt(params, "d", 9))
	assert.Equal(t, 9, paramInt(params, "missing", 9))
}

func TestParamFloatTypesAndFallback(t *testing.T) {
	params := map[string]any{"a": float64(1.5), "b": 2, "c": int64(3)}
	assert.InDelta(t, 1.5, paramFloat(params, "a", 0), 1e-9)
	assert.InDelta(t, 2.0, paramFloat(params, "b", 0), 1e-9)
	assert.InDelta(t, 3.0, paramFloat(params, "c", 0), 1e-9)
	assert.InDelta(t, 0.1, paramFloat(params, "missing", 0.1), 1e-9)
}

func TestParamBool(t *testing.T) {
	params := map[string]any{"a": true, "b": "true"}
	assert.True(t, paramBool(params, "a", false))
	assert.False(t, paramBool(params, "b", false))
	assert.True(t, paramBool(params, "missing", true))
}

func TestParamString(t *testing.T) {
	params := map[string]any{"a": "hello", "b": 5}
	assert.Equal(t, "hello", paramString(params, "a", "fallback"))
	assert.Equal(t, "fallback", paramString(params, "b", "fallback"))
	assert.Equal(t, "fallback", paramString(params, "missing", "fallback"))
}
