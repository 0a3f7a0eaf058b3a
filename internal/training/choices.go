package training

import (
	"errors"
	"fmt"

	"github.com/vytor/deckflash/internal/deck"
)

const (
	// DefaultChoicesCount is the size of a choice set, target included.
	DefaultChoicesCount = 5

	// MaxRandomAttempts bounds random draws per missing choice before the
	// generator falls back to a linear scan.
	MaxRandomAttempts = 100
)

var (
	ErrTooManyChoices    = errors.New("more choices requested than positions available")
	ErrSelectedOutOfDeck = errors.New("selected position outside the stack")
)

// GenerateChoicePositions returns total-len(selected) positions in
// [1,stackSize], distinct from each other and from selected. Each missing
// position is drawn at random up to MaxRandomAttempts times, then taken from a
// scan of 1..stackSize, so the call always terminates.
func GenerateChoicePositions(stackSize int, selected []int, total int, rng RNG) ([]int, error) {
	if total > stackSize {
		return nil, fmt.Errorf("%w: %d of %d", ErrTooManyChoices, total, stackSize)
	}
	used := make(map[int]bool, total)
	for _, p := range selected {
		if p < 1 || p > stackSize {
			return nil, fmt.Errorf("%w: %d", ErrSelectedOutOfDeck, p)
		}
		used[p] = true
	}
	need := total - len(used)
	if need <= 0 {
		return []int{}, nil
	}

	out := make([]int, 0, need)
	for len(out) < need {
		p, ok := drawUnused(stackSize, used, rng)
		if !ok {
			p = scanUnused(stackSize, used)
		}
		used[p] = true
		out = append(out, p)
	}
	return out, nil
}

func drawUnused(stackSize int, used map[int]bool, rng RNG) (int, bool) {
	for range MaxRandomAttempts {
		p := rng.IntN(stackSize) + 1
		if !used[p] {
			return p, true
		}
	}
	return 0, false
}

// scanUnused is only reached when random draws keep colliding. total <=
// stackSize guarantees a free position exists.
func scanUnused(stackSize int, used map[int]bool) int {
	for p := 1; p <= stackSize; p++ {
		if !used[p] {
			return p
		}
	}
	panic("training: no unused position left")
}

// GenerateUniqueChoices returns total-len(selected) positioned cards from
// stack, distinct by position from each other and from selected.
func GenerateUniqueChoices(stack deck.Stack, selected []deck.PositionedCard, total int, rng RNG) ([]deck.PositionedCard, error) {
	positions := make([]int, len(selected))
	for i, s := range selected {
		positions[i] = s.Position
	}
	picked, err := GenerateChoicePositions(stack.Len(), positions, total, rng)
	if err != nil {
		return nil, err
	}
	out := make([]deck.PositionedCard, len(picked))
	for i, p := range picked {
		pc, err := stack.Positioned(p)
		if err != nil {
			return nil, err
		}
		out[i] = pc
	}
	return out, nil
}

// ChoiceSet is the group of candidate answers shown in one round: the target
// and its distractors in shuffled order.
type ChoiceSet []deck.PositionedCard

func (cs ChoiceSet) Contains(position int) bool {
	for _, c := range cs {
		if c.Position == position {
			return true
		}
	}
	return false
}

func (cs ChoiceSet) Positions() []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.Position
	}
	return out
}

// BuildChoiceSet returns target plus total-1 distractors from stack, shuffled.
func BuildChoiceSet(stack deck.Stack, target deck.PositionedCard, total int, rng RNG) (ChoiceSet, error) {
	if total < 1 {
		total = 1
	}
	distractors, err := GenerateUniqueChoices(stack, []deck.PositionedCard{target}, total, rng)
	if err != nil {
		return nil, err
	}
	all := append([]deck.PositionedCard{target}, distractors...)
	return ChoiceSet(Shuffle(all, rng)), nil
}
