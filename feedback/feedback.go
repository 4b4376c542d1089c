// Package feedback simulates the feedback a guess receives against a
// hidden target, and counts how many solutions stay consistent with it.
package feedback

import (
	"github.com/birdulon/wordlerank/alphabet"
)

// Lookup returns the solutions containing every letter of a required set,
// or nil when no solution does.
type Lookup interface {
	Lookup(key alphabet.LetterSet) []alphabet.Word
}

// State is what one round of feedback tells us about the solution.
type State struct {
	// Required holds the letters confirmed present somewhere.
	Required alphabet.LetterSet
	// Banned holds, per position, the letters that can't be there.
	Banned [alphabet.MaxWordLength]alphabet.LetterSet
	Length int
}

// Admits returns true if no letter of w sits where it is banned.
func (st *State) Admits(w alphabet.Word) bool {
	var hit alphabet.LetterSet
	for i := 0; i < st.Length; i++ {
		hit |= w.At(i) & st.Banned[i]
	}
	return hit == 0
}

// Ban adds letters to the banned set at position i.
func (st *State) Ban(i int, letters alphabet.LetterSet) {
	st.Banned[i] |= letters
}

// Simulator computes feedback states for a fixed alphabet and word length.
type Simulator struct {
	all    alphabet.LetterSet
	length int
}

func NewSimulator(all alphabet.LetterSet, length int) *Simulator {
	return &Simulator{all: all, length: length}
}

func (s *Simulator) WordLength() int {
	return s.length
}

// Simulate returns the feedback state of guess against target.
func (s *Simulator) Simulate(guess, target alphabet.Word) State {
	var st State
	s.SimulateInto(guess, target, &st)
	return st
}

// SimulateInto writes the feedback of guess against target into st.
// For a guessed letter g at position i:
//   - g is the target's letter at i: nothing else may occupy i.
//   - g is elsewhere in the target: g is banned at i only.
//   - g is not in the target: g is banned everywhere.
func (s *Simulator) SimulateInto(guess, target alphabet.Word, st *State) {
	st.Required = guess.Full() & target.Full()
	st.Length = s.length
	absent := guess.Full() &^ target.Full()
	for i := 0; i < s.length; i++ {
		g, t := guess.At(i), target.At(i)
		banned := absent | g&^t
		if correct := g & t; correct != 0 {
			banned |= s.all &^ correct
		}
		st.Banned[i] = banned
	}
}

// CountRemaining counts the solutions consistent with st.
func CountRemaining(st *State, l Lookup) int {
	remaining := 0
	for _, w := range l.Lookup(st.Required) {
		if st.Admits(w) {
			remaining++
		}
	}
	return remaining
}

// Aggregate merges several guesses into one probe by OR-ing their
// positions. The result treats the guesses as if their feedback arrived
// at once from a single wider guess; it is not sequential play, where
// later guesses could depend on earlier feedback.
func Aggregate(guesses ...alphabet.Word) alphabet.Word {
	var agg alphabet.Word
	for _, g := range guesses {
		agg = agg.Or(g)
	}
	return agg
}
