// Package dice produces movement and tie-break rolls.
package dice

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrEmptyRange is returned when the options describe no possible outcome.
var ErrEmptyRange = errors.New("dice: empty roll range")

// Roller is anything that yields a roll.
type Roller interface {
	Roll() int
}

// Options configures the distribution of a Dice.
type Options struct {
	Count int // dice summed per roll
	Sides int // faces per die, numbered 1..Sides
	// Weights optionally biases each face; len(Weights) must equal Sides.
	Weights []int
}

// Range returns the smallest and largest roll these options can produce.
func (o Options) Range() (lo, hi int) {
	return o.Count, o.Count * o.Sides
}

// Validate checks that the options describe a non-empty range.
func (o Options) Validate() error {
	if o.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1, got %d", ErrEmptyRange, o.Count)
	}
	if o.Sides < 1 {
		return fmt.Errorf("%w: sides must be at least 1, got %d", ErrEmptyRange, o.Sides)
	}
	if o.Weights == nil {
		return nil
	}
	if len(o.Weights) != o.Sides {
		return fmt.Errorf("%w: %d weights for %d sides", ErrEmptyRange, len(o.Weights), o.Sides)
	}
	total := 0
	for face, w := range o.Weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight for face %d", ErrEmptyRange, face+1)
		}
		total += w
	}
	if total == 0 {
		return fmt.Errorf("%w: all weights are zero", ErrEmptyRange)
	}
	return nil
}

// Dice rolls Count dice and sums them.
type Dice struct {
	opts        Options
	rng         *rand.Rand
	totalWeight int
}

// New builds dice from validated options. The rng is required so that every
// game is reproducible from its seed.
func New(rng *rand.Rand, opts Options) (*Dice, error) {
	if rng == nil {
		panic("rng is required for dice")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	d := &Dice{opts: opts, rng: rng}
	for _, w := range opts.Weights {
		d.totalWeight += w
	}
	return d, nil
}

// Single is a convenience for one fair die with the given number of sides.
func Single(rng *rand.Rand, sides int) (*Dice, error) {
	return New(rng, Options{Count: 1, Sides: sides})
}

// Options returns the distribution this dice was built with.
func (d *Dice) Options() Options {
	return d.opts
}

// Roll returns the sum of one throw of every die.
func (d *Dice) Roll() int {
	sum := 0
	for range d.opts.Count {
		sum += d.face()
	}
	return sum
}

func (d *Dice) face() int {
	if d.totalWeight == 0 {
		return d.rng.IntN(d.opts.Sides) + 1
	}
	n := d.rng.IntN(d.totalWeight)
	for i, w := range d.opts.Weights {
		if n < w {
			return i + 1
		}
		n -= w
	}
	return d.opts.Sides
}
