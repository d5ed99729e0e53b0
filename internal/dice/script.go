package dice

// Script replays a fixed sequence of rolls and then repeats the last one.
// It stands in for Dice wherever a test or a replay needs exact outcomes.
type Script struct {
	rolls []int
	next  int
}

// Scripted returns a Roller yielding rolls in order.
func Scripted(rolls ...int) *Script {
	if len(rolls) == 0 {
		panic("scripted dice need at least one roll")
	}
	return &Script{rolls: rolls}
}

func (s *Script) Roll() int {
	if s.next >= len(s.rolls) {
		return s.rolls[len(s.rolls)-1]
	}
	r := s.rolls[s.next]
	s.next++
	return r
}

// Used reports how many scripted rolls have been consumed.
func (s *Script) Used() int {
	return s.next
}
