package player

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// Kind enumerates the closed set of strategy variants.
type Kind int

const (
	Impulsive Kind = iota
	Demanding
	Cautious
	Random
	Human
)

var kindNames = map[Kind]string{
	Impulsive: "impulsive",
	Demanding: "demanding",
	Cautious:  "cautious",
	Random:    "random",
	Human:     "human",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the known variants.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind accepts the lowercase names used in configuration.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

// Offer is the read-only view a strategy gets when the player lands on an
// unowned cell.
type Offer struct {
	Cell    int
	Price   int
	Rent    int
	Balance int // the deciding player's balance before paying
}

// Decision is the answer to an Offer.
type Decision int

const (
	Decline Decision = iota
	Buy
	// Defer means the answer comes later, from outside the engine.
	Defer
)

func (d Decision) String() string {
	switch d {
	case Buy:
		return "buy"
	case Defer:
		return "defer"
	default:
		return "decline"
	}
}

// Strategy is the one capability every variant provides.
// Automated variants answer Buy or Decline immediately; the human variant
// answers Defer and the engine suspends the turn.
type Strategy interface {
	Kind() Kind
	DecidePurchase(o Offer) Decision
	String() string
}

func decide(buy bool) Decision {
	if buy {
		return Buy
	}
	return Decline
}

// ImpulsiveStrategy buys everything it can afford.
type ImpulsiveStrategy struct{}

func (ImpulsiveStrategy) Kind() Kind     { return Impulsive }
func (ImpulsiveStrategy) String() string { return Impulsive.String() }

func (ImpulsiveStrategy) DecidePurchase(o Offer) Decision {
	return decide(o.Balance >= o.Price)
}

// DemandingStrategy buys only when the balance left afterwards stays above
// Threshold.
type DemandingStrategy struct {
	Threshold int
}

func (DemandingStrategy) Kind() Kind { return Demanding }

func (s DemandingStrategy) String() string {
	return fmt.Sprintf("%s(%d)", Demanding, s.Threshold)
}

func (s DemandingStrategy) DecidePurchase(o Offer) Decision {
	return decide(o.Balance-o.Price > s.Threshold)
}

// CautiousStrategy buys only cells priced below Threshold.
type CautiousStrategy struct {
	Threshold int
}

func (CautiousStrategy) Kind() Kind { return Cautious }

func (s CautiousStrategy) String() string {
	return fmt.Sprintf("%s(%d)", Cautious, s.Threshold)
}

func (s CautiousStrategy) DecidePurchase(o Offer) Decision {
	return decide(o.Price < s.Threshold)
}

// RandomStrategy flips a coin.
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandom creates a coin-flipping strategy driven by rng.
func NewRandom(rng *rand.Rand) *RandomStrategy {
	if rng == nil {
		panic("rng is required for the random strategy")
	}
	return &RandomStrategy{rng: rng}
}

func (*RandomStrategy) Kind() Kind     { return Random }
func (*RandomStrategy) String() string { return Random.String() }

func (s *RandomStrategy) DecidePurchase(Offer) Decision {
	return decide(s.rng.IntN(2) == 1)
}

// HumanStrategy always defers; the decision is supplied by a purchase
// prompt outside the engine.
type HumanStrategy struct{}

func (HumanStrategy) Kind() Kind                   { return Human }
func (HumanStrategy) String() string               { return Human.String() }
func (HumanStrategy) DecidePurchase(Offer) Decision { return Defer }

// NewStrategy builds the variant named by kind. Threshold is used by the
// demanding and cautious variants; rng by the random one.
func NewStrategy(kind Kind, threshold int, rng *rand.Rand) (Strategy, error) {
	switch kind {
	case Impulsive:
		return ImpulsiveStrategy{}, nil
	case Demanding:
		return DemandingStrategy{Threshold: threshold}, nil
	case Cautious:
		return CautiousStrategy{Threshold: threshold}, nil
	case Random:
		return NewRandom(rng), nil
	case Human:
		return HumanStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy kind %d", int(kind))
	}
}
