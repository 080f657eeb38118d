package wallet

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"
)

// maxWordDistance bounds how far a typo may be from a suggested word.
const maxWordDistance = 2

var wordSet map[string]bool

func init() {
	list := bip39.GetWordList()
	wordSet = make(map[string]bool, len(list))
	for _, w := range list {
		wordSet[w] = true
	}
}

// NormalizeMnemonic lowercases the phrase and collapses whitespace.
func NormalizeMnemonic(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// Typo is a word that is not in the BIP-39 English list.
type Typo struct {
	Position   int // 1-based
	Word       string
	Suggestion string
}

// FindTypos reports every unknown word in phrase with the closest list word,
// if one is near enough.
func FindTypos(phrase string) []Typo {
	var typos []Typo
	for i, word := range strings.Fields(NormalizeMnemonic(phrase)) {
		if wordSet[word] {
			continue
		}
		typos = append(typos, Typo{Position: i + 1, Word: word, Suggestion: closestWord(word)})
	}
	return typos
}

func closestWord(word string) string {
	best, bestDist := "", maxWordDistance+1
	for _, candidate := range bip39.GetWordList() {
		if d := levenshtein.ComputeDistance(word, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
