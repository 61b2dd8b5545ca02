package resample

import (
	"sort"

	"github.com/aikiriao/R2sampler/dsp/core"
	"github.com/aikiriao/R2sampler/dsp/numeric"
)

// StagePlan is one (up, down) rate-conversion pass in a multi-stage cascade.
type StagePlan struct {
	Up   int
	Down int
}

// factorizeFull is numeric.Factorize with enough slots that the trial
// division always runs to completion, with the degenerate trailing residue
// of 1 (left over once x has been fully divided down) dropped. A bare [1] is
// preserved when x itself is 1, since that means "no factor".
func factorizeFull(x int) []int {
	if x <= 1 {
		return []int{1}
	}
	raw := numeric.Factorize(x, x+1)
	out := raw[:0:0]
	for _, f := range raw {
		if f != 1 {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []int{1}
	}
	return out
}

// planStages factors (upTotal, downTotal) into an ordered cascade of stages
// whose up/down products reproduce upTotal/downTotal, following a primary
// assignment pass, a trailing-factor pass, and a composite-up reduction
// pass, then sorts the result by each stage's conversion ratio.
func planStages(upTotal, downTotal, maxStages int) ([]StagePlan, error) {
	upFactors := factorizeFull(upTotal)
	downFactors := factorizeFull(downTotal)
	if upTotal == 1 {
		upFactors = nil
	}
	if downTotal == 1 {
		downFactors = nil
	}

	var stages []StagePlan

	// Primary pass: consume down factors left to right, absorbing up
	// factors until the running product exceeds the current down factor.
	upIdx := 0
	for _, d := range downFactors {
		u := 1
		for u <= d && upIdx < len(upFactors) {
			u *= upFactors[upIdx]
			upIdx++
		}
		stages = append(stages, StagePlan{Up: u, Down: d})
	}

	// Trailing pass: any up factors left unconsumed become their own
	// (u, 1) stages, in order.
	for ; upIdx < len(upFactors); upIdx++ {
		stages = append(stages, StagePlan{Up: upFactors[upIdx], Down: 1})
	}

	// Reduction pass: split a stage whose up factor dominates its down
	// factor by 2x or more, when that up factor is composite, moving the
	// split-off divisor onto a later down-limited stage (or a new trailing
	// stage) so no single stage carries an unnecessarily wide upsampling
	// ratio.
	for changed := true; changed; {
		changed = false
		for i := range stages {
			if stages[i].Down == 0 || stages[i].Up < 2*stages[i].Down {
				continue
			}
			f, ok := splitFactor(stages[i].Up, stages[i].Down)
			if !ok {
				continue
			}
			stages[i].Up /= f
			changed = true

			placed := false
			for j := i + 1; j < len(stages); j++ {
				if stages[j].Up < stages[j].Down {
					stages[j].Up *= f
					placed = true
					break
				}
			}
			if !placed {
				stages = append(stages, StagePlan{Up: f, Down: 1})
			}
		}
	}

	if len(stages) == 0 {
		stages = []StagePlan{{Up: 1, Down: 1}}
	}
	if len(stages) > maxStages {
		return nil, ErrInvalidArgument
	}

	// Ratios are compared with NearlyEqual, not raw <, so stages whose ratio
	// differs only by floating-point rounding keep their original relative
	// order instead of flipping on every run.
	sort.SliceStable(stages, func(i, j int) bool {
		ri, rj := stageRatio(stages[i]), stageRatio(stages[j])
		if core.NearlyEqual(ri, rj, 0) {
			return false
		}
		return ri < rj
	})

	return stages, nil
}

// splitFactor finds the smallest nontrivial factor f of u such that u/f is
// still greater than d, so splitting leaves a meaningful reduction on the
// stage that keeps u/f.
func splitFactor(u, d int) (int, bool) {
	for _, f := range factorizeFull(u) {
		if f > 1 && f < u && u/f > d {
			return f, true
		}
	}
	return 0, false
}

func stageRatio(s StagePlan) float64 {
	if s.Up >= s.Down {
		return float64(s.Up) / float64(s.Down)
	}
	return float64(s.Down) / float64(s.Up)
}
