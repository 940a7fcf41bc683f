/*
Package normalize turns raw scraped tokens into their published form: patient names are
reordered from surname-first to given-name-first and title-cased, and DD/MM tokens become
ISO dates anchored to the processing year.
*/
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrNameNormalization = errors.New("name normalization failed")

// Markers that open a composite surname ("DE LA OSSA", "VAN DER BERG", "MAC DONALD").
var compoundMarkers = map[string]bool{
	"DE": true, "DEL": true, "VAN": true, "VON": true, "MAC": true, "MC": true,
}

var articleMarkers = map[string]bool{
	"LA": true, "LOS": true, "LAS": true,
}

// permutation lists source token positions in output order.
type permutation []int

// reorderRule is the permutation for one token count. override, when set, may pick a
// different permutation after looking at the marker words.
type reorderRule struct {
	order    permutation
	override func(tokens []string) (permutation, bool)
}

var reorderRules = map[int]reorderRule{
	2: {order: permutation{1, 0}},
	3: {order: permutation{2, 0, 1}},
	4: {order: permutation{2, 3, 0, 1}},
	5: {order: permutation{3, 4, 0, 1, 2}, override: compositeOfFive},
	6: {order: halfSplit(6), override: compositeOfSix},
}

// compositeOfFive keeps the first three tokens together as the surname whatever marker
// opens it. The unmarked case resolves to the same split.
func compositeOfFive(tokens []string) (permutation, bool) {
	if compoundMarkers[strings.ToUpper(tokens[0])] {
		return permutation{3, 4, 0, 1, 2}, true
	}
	return nil, false
}

// compositeOfSix handles DE/DEL + LA/LOS/LAS: tokens 0-2 are one surname, token 3 the
// second surname and tokens 4-5 the given names.
func compositeOfSix(tokens []string) (permutation, bool) {
	first, second := strings.ToUpper(tokens[0]), strings.ToUpper(tokens[1])
	if (first == "DE" || first == "DEL") && articleMarkers[second] {
		return permutation{4, 5, 0, 1, 2, 3}, true
	}
	return nil, false
}

// halfSplit treats the first n/2 tokens as surnames and the rest as given names.
func halfSplit(n int) permutation {
	mid := n / 2
	p := make(permutation, 0, n)
	for i := mid; i < n; i++ {
		p = append(p, i)
	}
	for i := 0; i < mid; i++ {
		p = append(p, i)
	}
	return p
}

// Reorder moves surname-first tokens into given-name-first order.
func Reorder(tokens []string) ([]string, error) {
	n := len(tokens)
	if n < 2 {
		return tokens, nil
	}

	order := halfSplit(n)
	if rule, ok := reorderRules[n]; ok {
		order = rule.order
		if rule.override != nil {
			if p, matched := rule.override(tokens); matched {
				order = p
			}
		}
	}

	if len(order) != n {
		return nil, fmt.Errorf("%w: permutation of %d positions for %d tokens", ErrNameNormalization, len(order), n)
	}

	out := make([]string, n)
	for i, src := range order {
		if src < 0 || src >= n {
			return nil, fmt.Errorf("%w: position %d out of range", ErrNameNormalization, src)
		}
		out[i] = tokens[src]
	}
	return out, nil
}

// Name reorders and title-cases a raw surname-first name. On failure it returns the raw
// name together with the error so callers can log and carry on.
func Name(raw string) (string, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return raw, nil
	}

	reordered, err := Reorder(tokens)
	if err != nil {
		return raw, err
	}

	for i, t := range reordered {
		reordered[i] = titleCase(t)
	}
	return strings.Join(reordered, " "), nil
}

func titleCase(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError && size <= 1 {
		return strings.ToLower(word)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
