package worstcase

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat/combin"
	"lukechampine.com/frand"

	"github.com/birdulon/wordlerank/alphabet"
	"github.com/birdulon/wordlerank/feedback"
)

// Selection picks the guess combinations to rank.
type Selection struct {
	// Depth is the number of free guesses in each probe.
	Depth int
	// Fixed indices lead every probe and are never picked as free guesses.
	Fixed []int
	// Limit keeps the first n probes in lexicographic order.
	Limit int
	// Sample picks n probes at random, after Limit.
	Sample int
}

// Probes lists the probes sel selects among numWords words: sets of Depth
// distinct free word indices, each prefixed by the fixed indices. With
// depth 0 the fixed guesses form the only probe.
//
// Only the selected probes are materialized. A limit stops the generator
// early, and a sample without a limit maps random combination indices
// directly, so neither walks the whole space.
func Probes(numWords int, sel Selection) ([][]int, error) {
	for _, f := range sel.Fixed {
		if f < 0 || f >= numWords {
			return nil, fmt.Errorf("fixed guess index %d out of range", f)
		}
	}
	if sel.Depth < 0 {
		return nil, fmt.Errorf("depth %d is negative", sel.Depth)
	}
	if sel.Depth == 0 {
		if len(sel.Fixed) == 0 {
			return nil, nil
		}
		return [][]int{slices.Clone(sel.Fixed)}, nil
	}
	if sel.Depth > numWords {
		return nil, fmt.Errorf("depth %d exceeds the %d guessable words", sel.Depth, numWords)
	}

	free := make([]int, 0, numWords)
	for i := range numWords {
		if !slices.Contains(sel.Fixed, i) {
			free = append(free, i)
		}
	}
	if sel.Depth > len(free) {
		return nil, nil
	}
	switch {
	case sel.Limit > 0:
		return Sample(firstProbes(sel.Fixed, free, sel.Depth, sel.Limit), sel.Sample), nil
	case sel.Sample > 0:
		return sampleProbes(sel.Fixed, free, sel.Depth, sel.Sample)
	}
	return firstProbes(sel.Fixed, free, sel.Depth, 0), nil
}

func probeOf(fixed, free, comb []int) []int {
	probe := make([]int, 0, len(fixed)+len(comb))
	probe = append(probe, fixed...)
	for _, c := range comb {
		probe = append(probe, free[c])
	}
	return probe
}

// firstProbes returns the first limit probes, or all of them for limit <= 0.
func firstProbes(fixed, free []int, depth, limit int) [][]int {
	var probes [][]int
	gen := combin.NewCombinationGenerator(len(free), depth)
	comb := make([]int, depth)
	for gen.Next() {
		if limit > 0 && len(probes) == limit {
			break
		}
		gen.Combination(comb)
		probes = append(probes, probeOf(fixed, free, comb))
	}
	return probes
}

// sampleProbes draws n distinct combination indices and decodes each one.
func sampleProbes(fixed, free []int, depth, n int) ([][]int, error) {
	// combin.Binomial does not check for overflow; leave headroom for its
	// intermediate products.
	approx := combin.GeneralizedBinomial(float64(len(free)), float64(depth))
	if approx*float64(len(free)) >= math.MaxInt64 {
		return nil, fmt.Errorf("too many %d-word probes over %d words to sample", depth, len(free))
	}
	total := combin.Binomial(len(free), depth)
	if n >= total/2 {
		return Sample(firstProbes(fixed, free, depth, 0), n), nil
	}
	picked := make(map[int]struct{}, n)
	for len(picked) < n {
		picked[frand.Intn(total)] = struct{}{}
	}
	idx := lo.Keys(picked)
	slices.Sort(idx)

	probes := make([][]int, len(idx))
	comb := make([]int, depth)
	for i, ci := range idx {
		combin.IndexToCombination(comb, ci, len(free), depth)
		probes[i] = probeOf(fixed, free, comb)
	}
	return probes, nil
}

// AggregateProbes merges each probe's words into a single guess.
func AggregateProbes(words []alphabet.Word, probes [][]int) []alphabet.Word {
	out := make([]alphabet.Word, len(probes))
	for i, p := range probes {
		guesses := make([]alphabet.Word, len(p))
		for j, idx := range p {
			guesses[j] = words[idx]
		}
		out[i] = feedback.Aggregate(guesses...)
	}
	return out
}

// Sample returns n probes picked at random, in their original order. A
// non-positive n, or one not smaller than len(probes), returns probes.
func Sample(probes [][]int, n int) [][]int {
	if n <= 0 || n >= len(probes) {
		return probes
	}
	picked := frand.Perm(len(probes))[:n]
	slices.Sort(picked)
	out := make([][]int, n)
	for i, p := range picked {
		out[i] = probes[p]
	}
	return out
}
