package training

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vytor/deckflash/internal/deck"
)

var ErrUnknownMode = errors.New("unknown mode")

// Mode selects what a round shows and what the user answers with.
type Mode string

const (
	// CardToPosition shows a card; the answer is its position.
	CardToPosition Mode = "card-to-position"
	// PositionToCard shows a position; the answer is the card there.
	PositionToCard Mode = "position-to-card"
)

var Modes = []Mode{CardToPosition, PositionToCard}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case CardToPosition, PositionToCard:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Round is one flashcard question with its choice set.
type Round struct {
	Mode    Mode                `json:"mode"`
	Stack   string              `json:"stack"`
	Target  deck.PositionedCard `json:"target"`
	Choices ChoiceSet           `json:"choices"`
}

// Check reports whether the answered position is the target. Answers are
// compared by position in both modes since a position identifies the card.
func (r Round) Check(answerPosition int) bool {
	return answerPosition == r.Target.Position
}

// Prompt is what the user is shown: the card code or the position number.
func (r Round) Prompt() string {
	if r.Mode == PositionToCard {
		return fmt.Sprintf("%d", r.Target.Position)
	}
	return r.Target.Card.String()
}

// NewRound picks a uniform target position in stack and builds its choice set.
func NewRound(stack deck.Stack, mode Mode, choices int, rng RNG) (Round, error) {
	if stack.Len() == 0 {
		return Round{}, fmt.Errorf("%w: %s is empty", deck.ErrMalformedStack, stack.Name)
	}
	return NewRoundFor(stack, mode, rng.IntN(stack.Len())+1, choices, rng)
}

// NewRoundFor builds a round for a fixed target position.
func NewRoundFor(stack deck.Stack, mode Mode, target, choices int, rng RNG) (Round, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return Round{}, err
	}
	t, err := stack.Positioned(target)
	if err != nil {
		return Round{}, err
	}
	if choices <= 0 {
		choices = DefaultChoicesCount
	}
	set, err := BuildChoiceSet(stack, t, choices, rng)
	if err != nil {
		return Round{}, err
	}
	return Round{Mode: mode, Stack: stack.Name, Target: t, Choices: set}, nil
}
