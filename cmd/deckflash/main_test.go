package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/training"
)

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(input), &out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStacksCmd(t *testing.T) {
	out, err := run(t, "", "stacks")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "aronson"))
	assert.True(t, strings.HasPrefix(lines[1], "mnemonica"))
}

func TestShowCmd(t *testing.T) {
	out, err := run(t, "", "show", "mnemonica")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, deck.DeckSize)
	assert.Equal(t, []string{"27", "2C"}, strings.Fields(lines[26]))

	out, err = run(t, "", "show", "mnemonica", "--glyphs")
	require.NoError(t, err)
	assert.Contains(t, out, deck.MustParseCard("2C").Glyph())

	_, err = run(t, "", "show", "nope")
	assert.ErrorIs(t, err, deck.ErrStackNotFound)
}

func TestLookupCmd(t *testing.T) {
	out, err := run(t, "", "lookup", "mnemonica", "27")
	require.NoError(t, err)
	assert.Equal(t, "27 2C\n", out)

	out, err = run(t, "", "lookup", "mnemonica", "2c")
	require.NoError(t, err)
	assert.Equal(t, "27 2C\n", out)

	_, err = run(t, "", "lookup", "mnemonica", "53")
	assert.ErrorIs(t, err, deck.ErrPositionOutOfRange)

	_, err = run(t, "", "lookup", "mnemonica", "ZZ")
	assert.Error(t, err)
}

// expectedRounds replays the rounds a seeded quiz will ask.
func expectedRounds(t *testing.T, stack string, mode training.Mode, n, choices int, seed uint64) []training.Round {
	t.Helper()
	s, err := deck.DefaultRegistry().Get(stack)
	require.NoError(t, err)
	rng := training.NewRNG(seed)
	rounds := make([]training.Round, n)
	for i := range rounds {
		rounds[i], err = training.NewRound(s, mode, choices, rng)
		require.NoError(t, err)
	}
	return rounds
}

func TestQuizCmd_AllCorrect(t *testing.T) {
	rounds := expectedRounds(t, deck.Mnemonica, training.CardToPosition, 3, 4, 99)
	var input strings.Builder
	for _, r := range rounds {
		fmt.Fprintf(&input, "%d\n", r.Target.Position)
	}

	out, err := run(t, input.String(), "quiz", "mnemonica", "--rounds", "3", "--choices", "4", "--seed", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Where is "+rounds[0].Target.Card.String()+"?")
	assert.Equal(t, 3, strings.Count(out, "correct\n"))
	assert.Contains(t, out, "score: 3/3 (100%), best streak 3")
}

func TestQuizCmd_PositionToCardByLetterAndCode(t *testing.T) {
	rounds := expectedRounds(t, deck.Aronson, training.PositionToCard, 2, 5, 7)

	// First answer by letter, second by card code.
	var input strings.Builder
	for i, c := range rounds[0].Choices {
		if c.Position == rounds[0].Target.Position {
			fmt.Fprintf(&input, "%c\n", 'a'+i)
		}
	}
	fmt.Fprintf(&input, "%s\n", rounds[1].Target.Card)

	out, err := run(t, input.String(), "quiz", "aronson", "--mode", "position-to-card", "--rounds", "2", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Which card is at position %d?", rounds[0].Target.Position))
	assert.Contains(t, out, "score: 2/2 (100%)")
}

func TestQuizCmd_WrongAndInvalidAnswers(t *testing.T) {
	rounds := expectedRounds(t, deck.Mnemonica, training.CardToPosition, 1, 2, 3)
	var wrong int
	for _, c := range rounds[0].Choices {
		if c.Position != rounds[0].Target.Position {
			wrong = c.Position
		}
	}

	out, err := run(t, fmt.Sprintf("zz\n%d\n", wrong), "quiz", "mnemonica", "--rounds", "1", "--choices", "2", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "not a valid choice")
	assert.Contains(t, out, fmt.Sprintf("wrong: %s is at %d", rounds[0].Target.Card, rounds[0].Target.Position))
	assert.Contains(t, out, "score: 0/1 (0%)")
}

func TestQuizCmd_EndOfInput(t *testing.T) {
	out, err := run(t, "", "quiz", "mnemonica", "--rounds", "5", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "score: 0/0 (0%)")
}

func TestQuizCmd_BadFlags(t *testing.T) {
	_, err := run(t, "", "quiz", "mnemonica", "--mode", "sideways")
	assert.ErrorIs(t, err, training.ErrUnknownMode)

	_, err = run(t, "", "quiz", "mnemonica", "--choices", "1")
	assert.Error(t, err)

	_, err = run(t, "", "quiz", "mnemonica", "--rounds", "0")
	assert.Error(t, err)

	_, err = run(t, "", "quiz", "nope")
	assert.ErrorIs(t, err, deck.ErrStackNotFound)
}
