package training

import "github.com/vytor/deckflash/internal/deck"

// Shuffle returns a uniformly random permutation of in using Fisher-Yates.
// The input is never modified.
func Shuffle[T any](in []T, rng RNG) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleDeck returns every card of the stack with its stack position, in shuffled order.
func ShuffleDeck(stack deck.Stack, rng RNG) []deck.PositionedCard {
	return Shuffle(stack.PositionedCards(), rng)
}

// SpreadOffsets returns the left offset of each card in a fanned spread of
// count cards, each cardWidth wide, laid out inside containerWidth. Cards
// overlap just enough for the spread to fit; they never spread wider than
// side by side.
func SpreadOffsets(count int, cardWidth, containerWidth float64) []float64 {
	if count <= 0 {
		return []float64{}
	}
	offsets := make([]float64, count)
	if count == 1 {
		return offsets
	}
	step := (containerWidth - cardWidth) / float64(count-1)
	if step > cardWidth {
		step = cardWidth
	}
	if step < 0 {
		step = 0
	}
	for i := range offsets {
		offsets[i] = float64(i) * step
	}
	return offsets
}
