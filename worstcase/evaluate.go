// Package worstcase scores guesses by the number of solutions that can
// still remain after the guess in the worst case, and ranks many guesses
// in parallel.
package worstcase

import (
	"github.com/birdulon/wordlerank/alphabet"
	"github.com/birdulon/wordlerank/feedback"
)

// Source is the read-only view of the constraint cache that evaluation
// needs. *wordcache.Cache satisfies it.
type Source interface {
	feedback.Lookup
	Solutions() []alphabet.Word
}

// Evaluate returns the largest number of solutions left after guess over
// every possible target, and the index of the first target reaching it.
// With no solutions it returns 0, -1.
func Evaluate(sim *feedback.Simulator, guess alphabet.Word, src Source) (int, int) {
	var st feedback.State
	return evaluate(sim, guess, src, &st)
}

func evaluate(sim *feedback.Simulator, guess alphabet.Word, src Source, st *feedback.State) (int, int) {
	worst, worstTarget := 0, -1
	for i, target := range src.Solutions() {
		sim.SimulateInto(guess, target, st)
		// Strictly greater: ties keep the earliest target.
		if n := feedback.CountRemaining(st, src); n > worst {
			worst, worstTarget = n, i
		}
	}
	return worst, worstTarget
}
