package feedback

import (
	"strings"

	"github.com/birdulon/wordlerank/alphabet"
)

type Mark byte

const (
	MarkAbsent Mark = iota
	MarkPresent
	MarkExact
)

func (m Mark) String() string {
	switch m {
	case MarkExact:
		return "G"
	case MarkPresent:
		return "Y"
	}
	return "B"
}

// Pattern is the three-colour feedback of a single guess.
type Pattern []Mark

func (p Pattern) String() string {
	var sb strings.Builder
	for _, m := range p {
		sb.WriteString(m.String())
	}
	return sb.String()
}

// ComputePattern colours each position of guess against target. Letters
// are treated as sets, the same way Simulate treats them: a letter present
// in the target is yellow wherever it is not green.
func ComputePattern(guess, target alphabet.Word) Pattern {
	p := make(Pattern, guess.Len())
	for i := range p {
		g := guess.At(i)
		switch {
		case g&target.At(i) != 0:
			p[i] = MarkExact
		case g&target.Full() != 0:
			p[i] = MarkPresent
		default:
			p[i] = MarkAbsent
		}
	}
	return p
}
