package deck

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrStackNotFound  = errors.New("stack not found")
	ErrDuplicateStack = errors.New("duplicate stack name")
)

// Registry is a read-only set of named stacks.
type Registry struct {
	stacks map[string]Stack
}

// NewRegistry validates every stack and indexes it by name. Names are
// case-insensitive, so two names differing only in case collide.
func NewRegistry(stacks ...Stack) (*Registry, error) {
	r := &Registry{stacks: make(map[string]Stack, len(stacks))}
	for _, s := range stacks {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		key := normalizeName(s.Name)
		if prev, ok := r.stacks[key]; ok {
			return nil, fmt.Errorf("%w: %s and %s", ErrDuplicateStack, prev.Name, s.Name)
		}
		r.stacks[key] = s
	}
	return r, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *Registry) Get(name string) (Stack, error) {
	s, ok := r.stacks[normalizeName(name)]
	if !ok {
		return Stack{}, fmt.Errorf("%w: %q", ErrStackNotFound, name)
	}
	return s, nil
}

func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// Names returns the registered lookup names, lowercased, in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.stacks))
	for n := range r.stacks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Stacks returns the registered stacks sorted by name.
func (r *Registry) Stacks() []Stack {
	out := make([]Stack, 0, len(r.stacks))
	for _, n := range r.Names() {
		out = append(out, r.stacks[n])
	}
	return out
}

const (
	Mnemonica    = "mnemonica"
	Aronson      = "aronson"
	NewDeckOrder = "new-deck-order"
)

var (
	mnemonicaOrder = strings.Fields(`
		4C 2H 7D 3C 4H 6D AS 5H 9S 2S QH 3D QC
		8H 6S 5S 9H KC 2D JH 3S 8S 6H 10C 5D KD
		2C 3H 8D 5C KS JD 8C 10S KH JC 7S 10H AD
		4S 7H 4D AC 9C JS QD 7C QS 10D 6C AH 9D`)

	aronsonOrder = strings.Fields(`
		JS KC 5C 2H 9S AS 3H 6C 8D AC 10S 5H 2D
		KD 7D 8C 3S AD 7S 5S QD AH 8S 3D 7H QH
		5D 7C 4H KH 4D 10D JC JH 10C JD 4S 10H 6H
		3C 2S 9H KS 6S 4C 8H 9C QS 6D QC 2C 9D`)
)

var defaultRegistry = mustBuildDefault()

// DefaultRegistry returns the built-in stacks.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func mustBuildDefault() *Registry {
	stacks := []Stack{
		mustStack(Mnemonica, "Mnemonica (Tamariz)", parseOrder(mnemonicaOrder)),
		mustStack(Aronson, "Aronson Stack", parseOrder(aronsonOrder)),
		mustStack(NewDeckOrder, "New Deck Order", StandardCards()),
	}
	r, err := NewRegistry(stacks...)
	if err != nil {
		panic(err)
	}
	return r
}

func parseOrder(codes []string) []Card {
	cards := make([]Card, len(codes))
	for i, code := range codes {
		cards[i] = MustParseCard(code)
	}
	return cards
}

func mustStack(name, label string, cards []Card) Stack {
	s, err := NewStack(name, label, cards)
	if err != nil {
		panic(err)
	}
	return s
}
