// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package sbfl implements spectrum-based fault localization: per-location
// execution statistics accumulated over passing and failing runs, and
// suspiciousness formulas computed over them.
package sbfl

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/deltamin/deltamin/pkg/log"
)

// ErrUnknownFormula is returned by Result for an unrecognized formula name.
var ErrUnknownFormula = errors.New("unknown suspiciousness formula")

// Stats holds the four counters for one instrumented location.
type Stats struct {
	ExecFailed    uint64 // executed by a failing run
	NotExecFailed uint64 // not executed by a failing run
	ExecPassed    uint64 // executed by a passing run
	NotExecPassed uint64 // not executed by a passing run
}

// Session accumulates coverage statistics for one analysis session.
// It is created explicitly with NewSession and owned by a single caller
// context; a caller that ingests coverage from several goroutines must
// serialize access itself. The location count only grows over the lifetime
// of a session.
type Session struct {
	stats  []Stats
	passed uint64
	failed uint64
}

func NewSession() *Session {
	return &Session{}
}

// Suspiciousness scores are statistically unreliable below this many
// failing runs.
const minFailedRuns = 5

var formulas = map[string]func(Stats) float64{
	"ochiai": func(s Stats) float64 {
		ef := float64(s.ExecFailed)
		return ef / math.Sqrt(float64(s.ExecFailed+s.NotExecFailed)*float64(s.ExecFailed+s.ExecPassed))
	},
	"dstar": func(s Stats) float64 {
		ef := float64(s.ExecFailed)
		return ef * ef / float64(s.ExecPassed+s.NotExecFailed)
	},
}

// Formulas returns the known formula names, sorted.
func Formulas() []string {
	names := maps.Keys(formulas)
	sort.Strings(names)
	return names
}

// AddCoverage records one run. cov holds one byte per instrumented location;
// non-zero means the location was executed. A vector wider than anything
// seen before grows the session: every location introduced by the growth is
// backfilled as "not executed" for all runs recorded prior to its discovery.
func (s *Session) AddCoverage(cov []byte, crashed bool) {
	if len(cov) > len(s.stats) {
		old := len(s.stats)
		s.stats = append(s.stats, make([]Stats, len(cov)-old)...)
		for i := old; i < len(s.stats); i++ {
			s.stats[i].NotExecFailed = s.failed
			s.stats[i].NotExecPassed = s.passed
		}
	}
	for i, b := range cov {
		switch {
		case b != 0 && crashed:
			s.stats[i].ExecFailed++
		case b != 0:
			s.stats[i].ExecPassed++
		case crashed:
			s.stats[i].NotExecFailed++
		default:
			s.stats[i].NotExecPassed++
		}
	}
	if crashed {
		s.failed++
	} else {
		s.passed++
	}
}

// Result computes the suspiciousness of every location using the named
// formula. Division by zero follows IEEE semantics (Inf/NaN) and is not
// special-cased.
func (s *Session) Result(formula string) ([]float64, error) {
	fn := formulas[formula]
	if fn == nil {
		return nil, fmt.Errorf("%w: %q (known: %v)",
			ErrUnknownFormula, formula, strings.Join(Formulas(), ", "))
	}
	if s.failed < minFailedRuns {
		log.Logf(0, "warning: only %v failing runs recorded, suspiciousness scores are unreliable", s.failed)
	}
	scores := make([]float64, len(s.stats))
	for i, st := range s.stats {
		scores[i] = fn(st)
	}
	return scores, nil
}

// Rank returns the indices of the topN highest-scoring locations, ties
// broken by ascending location index.
func Rank(scores []float64, topN int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	topN = max(min(topN, len(idx)), 0)
	return idx[:topN]
}

// Locations returns the number of instrumented locations seen so far.
func (s *Session) Locations() int {
	return len(s.stats)
}

// Location returns the counters of one location.
func (s *Session) Location(i int) Stats {
	return s.stats[i]
}

// Passed and Failed return the total number of runs recorded with each label.
func (s *Session) Passed() uint64 { return s.passed }
func (s *Session) Failed() uint64 { return s.failed }
