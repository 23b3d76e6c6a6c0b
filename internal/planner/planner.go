// Package planner implements the configuration generator (which field
// subsets and token budgets to try) and the job/worker count resolution
// rules that govern how many of those configurations actually run.
package planner

import (
	"fmt"

	"github.com/entitymatch/debugblocker/pkg/debugblocker/internalerr"
)

// Config is one (field_mask, per-field budget) pair: only fields where
// Mask[f] is true participate, and for those the first Budget[f] tokens
// (under global rank order) form the signature.
type Config struct {
	Mask   []bool
	Budget []int
}

// Generate produces a deterministic, ordered list of configurations from
// per-field token totals (summed over L and R) and the record counts. It
// always includes an all-fields configuration, one single-field
// configuration per field, and a halved-budget variant of the all-fields
// configuration.
func Generate(numFields int, lTotals, rTotals []int64, numL, numR int) []Config {
	if numFields == 0 {
		return nil
	}

	denom := int64(numL + numR)
	baseBudget := make([]int, numFields)
	for f := 0; f < numFields; f++ {
		baseBudget[f] = averageBudget(lTotals[f]+rTotals[f], denom)
	}

	configs := make([]Config, 0, numFields+2)

	allMask := make([]bool, numFields)
	for f := range allMask {
		allMask[f] = true
	}
	configs = append(configs, Config{Mask: allMask, Budget: append([]int(nil), baseBudget...)})

	for f := 0; f < numFields; f++ {
		mask := make([]bool, numFields)
		mask[f] = true
		budget := make([]int, numFields)
		budget[f] = baseBudget[f] * 2
		configs = append(configs, Config{Mask: mask, Budget: budget})
	}

	halved := make([]int, numFields)
	for f, b := range baseBudget {
		halved[f] = b / 2
		if halved[f] < 1 {
			halved[f] = 1
		}
	}
	configs = append(configs, Config{Mask: append([]bool(nil), allMask...), Budget: halved})

	return configs
}

func averageBudget(total int64, denom int64) int {
	if denom == 0 || total == 0 {
		return 1
	}
	avg := float64(total) / float64(denom)
	b := int(avg)
	if float64(b) < avg {
		b++
	}
	if b < 1 {
		b = 1
	}
	return b
}

// Resolve applies the configuration/worker count resolution rules to
// produce the final number of configurations to evaluate (clamped to the
// N generated by Generate) and the worker pool size.
func Resolve(nJobs, nConfigs, n, cpuCount int) (numConfigs, numWorkers int, err error) {
	if nJobs == 0 {
		return 0, 0, fmt.Errorf("%w: n_jobs must not be 0", internalerr.ErrInvalidInput)
	}
	if nConfigs == 0 || nConfigs < -2 {
		return 0, 0, fmt.Errorf("%w: n_configs must be -2, -1, or a positive count", internalerr.ErrInvalidInput)
	}

	numWorkers = resolveWorkerCount(nJobs, cpuCount)

	switch {
	case nConfigs == -2:
		numConfigs = n
	case nConfigs == -1:
		if nJobs < 0 {
			numConfigs = cpuCount + 1 + nJobs
		} else {
			numConfigs = nJobs
		}
	default:
		numConfigs = nConfigs
	}

	if numConfigs < 1 {
		numConfigs = 1
	}
	if numConfigs > n {
		numConfigs = n
	}
	return numConfigs, numWorkers, nil
}

func resolveWorkerCount(nJobs, cpuCount int) int {
	if nJobs < 0 {
		w := cpuCount + 1 + nJobs
		if w < 1 {
			w = 1
		}
		return w
	}
	return nJobs
}
