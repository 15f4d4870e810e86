package event

import "fmt"

type IdStrategy string

const (
	// IdStrategySequence hands out monotonically increasing ids that are never reused.
	IdStrategySequence IdStrategy = "sequence"
	// IdStrategyCount assigns len(events)+1. A delete followed by an add can
	// produce an id that is still in use.
	IdStrategyCount IdStrategy = "count"
)

func ParseIdStrategy(s string) (IdStrategy, error) {
	switch IdStrategy(s) {
	case IdStrategySequence, "":
		return IdStrategySequence, nil
	case IdStrategyCount:
		return IdStrategyCount, nil
	}
	return "", fmt.Errorf("unknown id strategy %q", s)
}

type idAllocator interface {
	next(current []Event) int
}

type sequenceIds struct {
	last int
}

func newSequenceIds(seed []Event) *sequenceIds {
	s := &sequenceIds{}
	for _, e := range seed {
		if e.Id > s.last {
			s.last = e.Id
		}
	}
	return s
}

func (s *sequenceIds) next(_ []Event) int {
	s.last++
	return s.last
}

type countIds struct{}

func (countIds) next(current []Event) int {
	return len(current) + 1
}

func newIdAllocator(strategy IdStrategy, seed []Event) idAllocator {
	if strategy == IdStrategyCount {
		return countIds{}
	}
	return newSequenceIds(seed)
}
