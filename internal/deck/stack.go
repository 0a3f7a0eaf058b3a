package deck

import (
	"errors"
	"fmt"
)

// DeckSize is the number of cards in every stack.
const DeckSize = 52

var (
	ErrCardNotInStack     = errors.New("card not in stack")
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrMalformedStack     = errors.New("malformed stack")
)

// Stack is a named full ordering of the deck used as a memorization system.
type Stack struct {
	Name  string
	Label string
	cards []Card
	index map[Card]int
}

// NewStack builds a stack from cards in order. The slice is copied.
func NewStack(name, label string, cards []Card) (Stack, error) {
	s := Stack{
		Name:  name,
		Label: label,
		cards: append([]Card(nil), cards...),
	}
	if err := s.Validate(); err != nil {
		return Stack{}, err
	}
	s.index = make(map[Card]int, len(s.cards))
	for i, c := range s.cards {
		s.index[c] = i + 1
	}
	return s, nil
}

// Validate checks that the stack holds each of the 52 cards exactly once.
func (s Stack) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrMalformedStack)
	}
	if len(s.cards) != DeckSize {
		return fmt.Errorf("%w: %s has %d cards, want %d", ErrMalformedStack, s.Name, len(s.cards), DeckSize)
	}
	seen := make(map[Card]int, DeckSize)
	for i, c := range s.cards {
		if !c.Valid() {
			return fmt.Errorf("%w: %s position %d holds invalid card %v", ErrMalformedStack, s.Name, i+1, c)
		}
		if prev, ok := seen[c]; ok {
			return fmt.Errorf("%w: %s has %s at positions %d and %d", ErrMalformedStack, s.Name, c, prev, i+1)
		}
		seen[c] = i + 1
	}
	return nil
}

// Len returns the number of cards in the stack.
func (s Stack) Len() int {
	return len(s.cards)
}

// Cards returns a copy of the ordering.
func (s Stack) Cards() []Card {
	return append([]Card(nil), s.cards...)
}

// PositionOf returns the 1-based position of card in the stack.
func (s Stack) PositionOf(card Card) (int, error) {
	if p, ok := s.index[card]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: %s in %s", ErrCardNotInStack, card, s.Name)
}

// CardAt returns the card at a 1-based position.
func (s Stack) CardAt(position int) (Card, error) {
	if position < 1 || position > len(s.cards) {
		return Card{}, fmt.Errorf("%w: %d not in [1,%d]", ErrPositionOutOfRange, position, len(s.cards))
	}
	return s.cards[position-1], nil
}

func (s Stack) Positioned(position int) (PositionedCard, error) {
	c, err := s.CardAt(position)
	if err != nil {
		return PositionedCard{}, err
	}
	return PositionedCard{Position: position, Card: c}, nil
}

func (s Stack) Locate(card Card) (PositionedCard, error) {
	p, err := s.PositionOf(card)
	if err != nil {
		return PositionedCard{}, err
	}
	return PositionedCard{Position: p, Card: card}, nil
}

// PositionedCards returns every card paired with its position, in stack order.
func (s Stack) PositionedCards() []PositionedCard {
	out := make([]PositionedCard, len(s.cards))
	for i, c := range s.cards {
		out[i] = PositionedCard{Position: i + 1, Card: c}
	}
	return out
}

// PositionedCard is a card together with its 1-based position in a stack.
type PositionedCard struct {
	Position int  `json:"position"`
	Card     Card `json:"card"`
}

func (p PositionedCard) String() string {
	return fmt.Sprintf("%d:%s", p.Position, p.Card)
}
