package vmath_test

import (
	"testing"

	"github.com/plus3/darkmatter/internal/vmath"
	"github.com/stretchr/testify/assert"
)

func TestLerpAndClamp(t *testing.T) {
	assert.Equal(t, float32(5), vmath.Lerp(0, 10, 0.5))
	assert.Equal(t, float32(0), vmath.Lerp(0, 10, 0))
	assert.Equal(t, float32(10), vmath.Lerp(0, 10, 1))

	assert.Equal(t, float32(1), vmath.Clamp(-3, 1, 2))
	assert.Equal(t, float32(2), vmath.Clamp(3, 1, 2))
	assert.Equal(t, float32(1.5), vmath.Clamp(1.5, 1, 2))

	v := vmath.V3(0, 0, 1).Lerp(vmath.V3(2, 4, 1), 0.25)
	assert.Equal(t, vmath.V3(0.5, 1, 1), v)
}

func TestRectOverlapIsStrict(t *testing.T) {
	player := vmath.Rect{X: 4, Y: 7, W: 1, H: 1}

	tests := []struct {
		name  string
		other vmath.Rect
		want  bool
	}{
		{"touching above", vmath.Rect{X: 4, Y: 8, W: 1, H: 1}, false},
		{"touching right", vmath.Rect{X: 5, Y: 7, W: 1, H: 1}, false},
		{"touching corner", vmath.Rect{X: 5, Y: 8, W: 1, H: 1}, false},
		{"overlap from above", vmath.Rect{X: 4, Y: 7.99, W: 1, H: 1}, true},
		{"overlap from left", vmath.Rect{X: 3.5, Y: 7, W: 1, H: 1}, true},
		{"inside", vmath.Rect{X: 4.25, Y: 7.25, W: 0.5, H: 0.5}, true},
		{"far away", vmath.Rect{X: 0, Y: 0, W: 1, H: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, player.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(player))
		})
	}
}

func TestRectContains(t *testing.T) {
	r := vmath.Rect{X: 0, Y: 0, W: 9, H: 16}
	assert.True(t, r.Contains(vmath.V2(0, 0)))
	assert.True(t, r.Contains(vmath.V2(9, 16)))
	assert.False(t, r.Contains(vmath.V2(9.1, 1)))
}
