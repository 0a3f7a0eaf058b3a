package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidCard = errors.New("invalid card")
	ErrInvalidRank = errors.New("invalid rank")
	ErrInvalidSuit = errors.New("invalid suit")
)

type Suit string

const (
	Spades   Suit = "S"
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
)

var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

func (s Suit) Valid() bool {
	switch s {
	case Spades, Hearts, Diamonds, Clubs:
		return true
	}
	return false
}

func (s Suit) Name() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	default:
		return "unknown"
	}
}

type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

// Card is one of the 52 cards of a standard deck.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// String returns the short code of the card, e.g. "AS", "10H", "KD".
func (c Card) String() string {
	return c.Rank.String() + string(c.Suit)
}

// Glyph returns the Unicode playing card character for c, or "" for an invalid card.
// The Unicode block skips the Knight (C) between Jack and Queen.
func (c Card) Glyph() string {
	if !c.Valid() {
		return ""
	}
	var base rune
	switch c.Suit {
	case Spades:
		base = 0x1F0A0
	case Hearts:
		base = 0x1F0B0
	case Diamonds:
		base = 0x1F0C0
	case Clubs:
		base = 0x1F0D0
	}
	offset := rune(c.Rank)
	if c.Rank >= Queen {
		offset++
	}
	return string(base + offset)
}

// MarshalJSON adds the short code and glyph next to rank and suit.
func (c Card) MarshalJSON() ([]byte, error) {
	type plain Card
	return json.Marshal(struct {
		plain
		Code  string `json:"code"`
		Glyph string `json:"glyph"`
	}{plain(c), c.String(), c.Glyph()})
}

// Index maps the card to a unique value in [0,52).
func (c Card) Index() int {
	var s int
	switch c.Suit {
	case Spades:
		s = 0
	case Hearts:
		s = 1
	case Diamonds:
		s = 2
	case Clubs:
		s = 3
	}
	return s*13 + int(c.Rank) - 1
}

// ParseCard parses a short card code such as "AS", "10h" or "td".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	suit := Suit(s[len(s)-1:])
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidSuit, s)
	}
	var r Rank
	switch rankStr := s[:len(s)-1]; rankStr {
	case "A":
		r = Ace
	case "J":
		r = Jack
	case "Q":
		r = Queen
	case "K":
		r = King
	case "T":
		r = 10
	default:
		v, err := strconv.Atoi(rankStr)
		if err != nil || v < 2 || v > 10 {
			return Card{}, fmt.Errorf("%w: %q", ErrInvalidRank, s)
		}
		r = Rank(v)
	}
	return Card{Rank: r, Suit: suit}, nil
}

// MustParseCard is ParseCard for static tables; it panics on a bad code.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// StandardCards returns the 52 cards in new-deck order:
// spades and diamonds A-K, then clubs and hearts K-A.
func StandardCards() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, s := range []Suit{Spades, Diamonds} {
		for r := Ace; r <= King; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	for _, s := range []Suit{Clubs, Hearts} {
		for r := King; r >= Ace; r-- {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return cards
}
