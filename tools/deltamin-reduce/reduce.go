// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// deltamin-reduce minimizes a crashing input against a seed corpus. Usage:
//
//	deltamin-reduce -seeds=corpus/ -crash=crash.bin -output=min.bin ./target [args...]
//
// It picks the seed closest to the crashing input by edit distance, computes
// the edit script between the two, and shrinks the script to the smallest
// subset that still makes the target crash. The target is started once per
// candidate with the candidate input on stdin; a run counts as reproducing
// when the target dies to a signal.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/deltamin/deltamin/pkg/delta"
	"github.com/deltamin/deltamin/pkg/edit"
	"github.com/deltamin/deltamin/pkg/log"
	"github.com/deltamin/deltamin/pkg/osutil"
	"github.com/deltamin/deltamin/pkg/seed"
	"github.com/deltamin/deltamin/pkg/tool"
)

var (
	flagSeeds   = flag.String("seeds", "", "seed file or directory (empty: builtin default seed)")
	flagCrash   = flag.String("crash", "", "crashing input file (required)")
	flagOutput  = flag.String("output", "", "file for the minimized input (default: stdout)")
	flagTimeout = flag.Duration("timeout", 10*time.Second, "per-run target timeout")
	flagMaxRuns = flag.Int("max-runs", 0, "limit on target executions (0: unlimited)")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if *flagCrash == "" || len(args) == 0 {
		tool.Failf("usage: deltamin-reduce -crash=FILE [flags] target [args...]")
	}
	crash, err := osutil.ReadFile(*flagCrash)
	if err != nil {
		tool.Fail(err)
	}
	pool, err := seed.Load(*flagSeeds)
	if err != nil {
		tool.Fail(err)
	}
	orig, err := seed.Closest(pool, crash)
	if err != nil {
		tool.Fail(err)
	}
	log.Logf(0, "closest seed: %v bytes, crashing input: %v bytes", len(orig), len(crash))

	dist, trace := edit.Compute(orig, crash)
	log.Logf(0, "original distance: %v", dist)
	log.Logf(2, "original trace: %v", trace)

	reduced, err := delta.Reduce(delta.Config{
		Oracle: func(candidate []byte) (bool, error) {
			return osutil.RunSignaled(*flagTimeout, candidate, args[0], args[1:]...)
		},
		MaxRuns: *flagMaxRuns,
		Logf: func(msg string, a ...interface{}) {
			log.Logf(1, msg, a...)
		},
	}, orig, trace)
	if err != nil {
		tool.Fail(err)
	}
	result := edit.Apply(reduced, orig, nil)
	log.Logf(0, "reduced distance: %v, minimized input: %v bytes", len(reduced), len(result))
	log.Logf(2, "reduced trace: %v", reduced)

	if *flagOutput != "" {
		if err := osutil.WriteFile(*flagOutput, result); err != nil {
			tool.Fail(err)
		}
		return
	}
	os.Stdout.Write(result)
}
