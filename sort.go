package watchpager

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var ErrUnknownSort = errors.New("unknown sort token")

const sortTokenSeparator = "."

// SortToken identifies one ordering in the form "<alias>.<asc|desc>",
// e.g. "created_at.desc".
type SortToken string

func NewSortToken(alias ColumnAlias, direction Direction) SortToken {
	return SortToken(alias + sortTokenSeparator + strings.ToLower(string(direction)))
}

// Split returns the alias and the direction encoded in the token.
func (t SortToken) Split() (ColumnAlias, Direction, bool) {
	idx := strings.LastIndex(string(t), sortTokenSeparator)
	if idx <= 0 || idx == len(t)-1 {
		return "", "", false
	}

	direction := Direction(strings.ToUpper(string(t[idx+1:])))
	if !direction.Valid() {
		return "", "", false
	}

	return string(t[:idx]), direction, true
}

type (
	ColumnAlias = string

	// ColumnMapping maps external column aliases to internal column names.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

// Sorts is a closed, per-entity set of sort tokens. Every alias of the
// mapping contributes exactly two tokens, "<alias>.asc" and "<alias>.desc".
//
// Tokens outside of the set always resolve to the fallback ordering, which
// keeps page boundaries stable for repeated calls.
type Sorts struct {
	tokens     map[SortToken]Orderings
	fallback   SortToken
	tiebreaker OrderBy
}

// NewSorts builds a Sorts set. The tiebreaker must be a unique column; it is
// appended to every resolved ordering that does not already sort by it.
func NewSorts(mapping ColumnMapping, fallback SortToken, tiebreaker OrderBy) (*Sorts, error) {
	if err := tiebreaker.validate(); err != nil {
		return nil, fmt.Errorf("invalid tiebreaker: %w", err)
	}

	s := &Sorts{
		tokens:     make(map[SortToken]Orderings, 2*len(mapping)),
		fallback:   fallback,
		tiebreaker: tiebreaker,
	}

	for alias, column := range mapping {
		for _, direction := range []Direction{DirectionASC, DirectionDESC} {
			orderings := Orderings{{Column: column, Direction: direction}}.Then(tiebreaker)
			if err := orderings.validate(); err != nil {
				return nil, fmt.Errorf("invalid sort alias '%s': %w", alias, err)
			}

			s.tokens[NewSortToken(alias, direction)] = orderings
		}
	}

	if _, ok := s.tokens[fallback]; !ok {
		return nil, fmt.Errorf("fallback sort token '%s' is not in the set", fallback)
	}

	return s, nil
}

// MustNewSorts is like NewSorts but panics on error. Intended for package
// level declarations.
func MustNewSorts(mapping ColumnMapping, fallback SortToken, tiebreaker OrderBy) *Sorts {
	s, err := NewSorts(mapping, fallback, tiebreaker)
	if err != nil {
		panic(err)
	}

	return s
}

// Default returns the fallback token.
func (s *Sorts) Default() SortToken {
	return s.fallback
}

// Tokens returns all known tokens in lexical order.
func (s *Sorts) Tokens() []SortToken {
	tokens := lo.Keys(s.tokens)
	slices.Sort(tokens)

	return tokens
}

// Known returns true if the token belongs to the set.
func (s *Sorts) Known(token SortToken) bool {
	_, ok := s.tokens[token]
	return ok
}

// Parse validates a raw token. An empty string is a valid absent token.
// Unknown tokens are reported with the closest known one, malformed ones
// additionally with the expected form.
func (s *Sorts) Parse(raw string) (SortToken, error) {
	token := SortToken(strings.TrimSpace(raw))
	if token == "" || s.Known(token) {
		return token, nil
	}

	if _, _, ok := token.Split(); !ok {
		return "", fmt.Errorf("%w '%s': want '<field>.<asc|desc>'. closest: '%s'", ErrUnknownSort, raw, s.Closest(token))
	}

	return "", fmt.Errorf("%w '%s'. closest: '%s'", ErrUnknownSort, raw, s.Closest(token))
}

// Resolve returns the ordering for the token. Absent or unknown tokens
// resolve to the fallback ordering.
func (s *Sorts) Resolve(token SortToken) Orderings {
	if orderings, ok := s.tokens[token]; ok {
		return slices.Clone(orderings)
	}

	return slices.Clone(s.tokens[s.fallback])
}

// Closest returns the known token with the smallest edit distance to input.
func (s *Sorts) Closest(input SortToken) SortToken {
	minDist := math.MaxInt
	closest := SortToken("")

	for _, token := range s.Tokens() {
		dist := levenshtein([]rune(token), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = token
		}
	}

	return closest
}
