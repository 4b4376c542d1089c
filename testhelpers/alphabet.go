// Package testhelpers holds small word lists and a string-based reference
// implementation of the feedback rules, used by tests across packages.
package testhelpers

import (
	"strings"

	"github.com/birdulon/wordlerank/alphabet"
)

const English = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SmallSolutions is a small pool of possible hidden solutions.
var SmallSolutions = []string{
	"ABOUT", "ABOVE", "ACTOR", "ADULT", "AGAIN", "ALERT", "ALIEN", "ALONG",
	"ANGEL", "APPLE", "ARISE", "BADGE", "BEACH", "BLAST", "BOARD", "BRAIN",
	"BREAD", "CANDY", "CHAIR", "CLEAN", "CLIMB", "CRANE", "CRATE", "DANCE",
	"DRINK", "EARTH", "EERIE", "FAITH", "FLAME", "GHOST", "GRAPE", "HEART",
	"HOUSE", "JUICE", "KNIFE", "LASER", "LEMON", "LIGHT", "MONEY", "MUSIC",
	"NIGHT", "OCEAN", "PARTY", "PIANO", "PLANT", "QUEEN", "RADIO", "RIVER",
	"SLATE", "SMILE", "STALE", "STEAL", "SUGAR", "TABLE", "TEACH", "TIGER",
	"TRAIN", "UNCLE", "VOICE", "WATER", "YOUTH", "ZEBRA",
}

// SmallGuessOnly are valid guesses that can never be the solution.
var SmallGuessOnly = []string{
	"SALET", "TARES", "ROATE", "LEAST", "TEALS", "FJORD", "NYMPH", "QAJAQ", "XYLYL",
}

// SmallAllWords returns the solutions followed by the guess-only words.
func SmallAllWords() []string {
	all := make([]string, 0, len(SmallSolutions)+len(SmallGuessOnly))
	all = append(all, SmallSolutions...)
	return append(all, SmallGuessOnly...)
}

func EnglishAlphabet() *alphabet.Alphabet {
	alph, err := alphabet.NewAlphabet(English)
	if err != nil {
		panic(err)
	}
	return alph
}

func EnglishEncoder() *alphabet.Encoder {
	enc, err := alphabet.NewEncoder(EnglishAlphabet(), 5)
	if err != nil {
		panic(err)
	}
	return enc
}

// MustEncode encodes every word, panicking on invalid input.
func MustEncode(enc *alphabet.Encoder, words ...string) []alphabet.Word {
	out := make([]alphabet.Word, len(words))
	for i, s := range words {
		w, err := enc.Encode(s)
		if err != nil {
			panic(err)
		}
		out[i] = w
	}
	return out
}

// Consistent reports whether candidate agrees with the feedback that
// guess receives against target:
//   - a letter in the right place must stay there;
//   - a letter elsewhere in the target must be in the candidate, but not
//     at that position;
//   - a letter absent from the target must be absent from the candidate.
func Consistent(guess, target, candidate string) bool {
	g, t, c := []rune(guess), []rune(target), []rune(candidate)
	for i, r := range g {
		switch {
		case t[i] == r:
			if c[i] != r {
				return false
			}
		case strings.ContainsRune(target, r):
			if c[i] == r || !strings.ContainsRune(candidate, r) {
				return false
			}
		default:
			if strings.ContainsRune(candidate, r) {
				return false
			}
		}
	}
	return true
}

// Remaining counts the solutions consistent with guess against target.
func Remaining(guess, target string, solutions []string) int {
	n := 0
	for _, s := range solutions {
		if Consistent(guess, target, s) {
			n++
		}
	}
	return n
}

// WorstCase is the brute-force worst case of guess over solutions.
func WorstCase(guess string, solutions []string) (int, int) {
	worst, worstIdx := 0, 0
	for i, target := range solutions {
		if n := Remaining(guess, target, solutions); n > worst {
			worst, worstIdx = n, i
		}
	}
	return worst, worstIdx
}
