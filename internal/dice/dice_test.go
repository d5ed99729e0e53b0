package dice

import (
	"testing"

	"github.com/lox/landlord/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"single d6", Options{Count: 1, Sides: 6}, true},
		{"two d6", Options{Count: 2, Sides: 6}, true},
		{"weighted", Options{Count: 1, Sides: 3, Weights: []int{0, 1, 3}}, true},
		{"no dice", Options{Count: 0, Sides: 6}, false},
		{"no sides", Options{Count: 1, Sides: 0}, false},
		{"weights length", Options{Count: 1, Sides: 6, Weights: []int{1, 1}}, false},
		{"negative weight", Options{Count: 1, Sides: 2, Weights: []int{-1, 2}}, false},
		{"zero weights", Options{Count: 1, Sides: 2, Weights: []int{0, 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrEmptyRange)
			}
		})
	}
}

func TestRollStaysInRange(t *testing.T) {
	d, err := New(randutil.New(1), Options{Count: 2, Sides: 6})
	require.NoError(t, err)

	lo, hi := d.Options().Range()
	assert.Equal(t, 2, lo)
	assert.Equal(t, 12, hi)
	for range 1000 {
		r := d.Roll()
		assert.GreaterOrEqual(t, r, lo)
		assert.LessOrEqual(t, r, hi)
	}
}

func TestWeightedFacesNeverRollZeroWeight(t *testing.T) {
	d, err := New(randutil.New(3), Options{Count: 1, Sides: 4, Weights: []int{0, 5, 0, 1}})
	require.NoError(t, err)

	seen := map[int]int{}
	for range 2000 {
		seen[d.Roll()]++
	}
	assert.Zero(t, seen[1])
	assert.Zero(t, seen[3])
	assert.Greater(t, seen[2], seen[4])
}

func TestSameSeedSameRolls(t *testing.T) {
	a, err := Single(randutil.New(99), 6)
	require.NoError(t, err)
	b, err := Single(randutil.New(99), 6)
	require.NoError(t, err)
	for range 50 {
		assert.Equal(t, a.Roll(), b.Roll())
	}
}

func TestNewRequiresRNG(t *testing.T) {
	assert.Panics(t, func() { _, _ = New(nil, Options{Count: 1, Sides: 6}) })
}

func TestScript(t *testing.T) {
	s := Scripted(3, 5)
	assert.Equal(t, 3, s.Roll())
	assert.Equal(t, 5, s.Roll())
	assert.Equal(t, 5, s.Roll())
	assert.Equal(t, 2, s.Used())
}
