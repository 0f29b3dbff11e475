// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package delta shrinks an edit trace to a locally minimal subset that still
// reproduces a failure, using a ddmin-style bisection over trace entries.
package delta

import (
	"github.com/deltamin/deltamin/pkg/edit"
)

type Config struct {
	// The trace is minimized with respect to this predicate: it receives a
	// candidate input and reports whether the failure still reproduces.
	// The reducer treats it as a black box; each call may be as expensive as
	// one target execution. Errors abort the reduction.
	Oracle func(candidate []byte) (bool, error)
	// MaxRuns is a limit on the number of oracle calls. Once it's hit, the
	// reduction continues as if the oracle begins to return false.
	// If it's set to 0 (by default), no limit is applied.
	MaxRuns int
	// Logf is used for sharing debugging output.
	Logf func(string, ...interface{})
}

// Reduce finds a smaller subset of trace entries whose application to seed
// still satisfies the oracle. The search partitions the trace into k
// contiguous chunks (k starts at 2), testing each chunk alone and its
// complement; a reproducing candidate replaces the trace and resets k, a
// full scan with no reproduction doubles k. The search stops once the trace
// has at most one entry or k exceeds twice the trace size; in the latter
// case the best trace found so far is returned, which is a normal terminal
// state, not an error. A size<=1 input is returned as is with no oracle
// calls, so re-running Reduce on its own minimal output is free.
func Reduce(cfg Config, seed []byte, trace edit.Trace) (edit.Trace, error) {
	if cfg.Logf == nil {
		cfg.Logf = func(string, ...interface{}) {}
	}
	ctx := &reducer{
		Config: cfg,
		seed:   seed,
		trace:  trace,
	}
	return ctx.run()
}

type reducer struct {
	Config
	seed  []byte
	trace edit.Trace
	runs  int
}

func (r *reducer) run() (edit.Trace, error) {
	for parts := 2; len(r.trace) > 1 && parts <= 2*len(r.trace); {
		r.Logf("trying %v partitions over %v edits", parts, len(r.trace))
		reduced, err := r.scan(parts)
		if err != nil {
			return nil, err
		}
		if reduced {
			parts = 2
			continue
		}
		parts *= 2
	}
	return r.trace, nil
}

// scan tests every chunk of a parts-way partition and its complement, in
// order. Chunk sizes are size/parts, with the remainder spread one extra
// entry over the leading chunks. The first reproducing candidate becomes the
// new current trace.
func (r *reducer) scan(parts int) (bool, error) {
	size, rem := len(r.trace)/parts, len(r.trace)%parts
	for start := 0; start < len(r.trace); {
		end := start + size
		if rem > 0 {
			rem--
			end++
		}
		mask := make(edit.Mask, len(r.trace))
		for i := start; i < end; i++ {
			mask[i] = true
		}
		ok, err := r.query(mask)
		if err != nil {
			return false, err
		}
		if ok {
			r.Logf("edits %v-%v alone reproduce", start, end-1)
			r.trace = selected(r.trace, mask)
			return true, nil
		}
		compl := make(edit.Mask, len(r.trace))
		for i := range compl {
			compl[i] = !mask[i]
		}
		ok, err = r.query(compl)
		if err != nil {
			return false, err
		}
		if ok {
			r.Logf("all edits but %v-%v reproduce", start, end-1)
			r.trace = selected(r.trace, compl)
			return true, nil
		}
		start = end
	}
	return false, nil
}

func (r *reducer) query(mask edit.Mask) (bool, error) {
	if r.MaxRuns > 0 && r.runs >= r.MaxRuns {
		r.Logf("we have reached the limit on oracle runs (%v); pretend it returns false", r.MaxRuns)
		return false, nil
	}
	r.runs++
	return r.Oracle(edit.Apply(r.trace, r.seed, mask))
}

func selected(trace edit.Trace, mask edit.Mask) edit.Trace {
	var res edit.Trace
	for i, op := range trace {
		if mask[i] {
			res = append(res, op)
		}
	}
	return res
}
