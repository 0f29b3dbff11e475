// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// deltamin-sbfl ranks suspect program locations from recorded coverage. Usage:
//
//	deltamin-sbfl -passed=cov/pass -failed=cov/fail -formula=ochiai -top=10
//
// Every regular file in the two directories is one raw coverage vector
// (one byte per instrumented location, non-zero = executed), labeled by the
// directory it came from.
package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/deltamin/deltamin/pkg/osutil"
	"github.com/deltamin/deltamin/pkg/sbfl"
	"github.com/deltamin/deltamin/pkg/tool"
)

var (
	flagPassed  = flag.String("passed", "", "directory with coverage vectors of passing runs")
	flagFailed  = flag.String("failed", "", "directory with coverage vectors of failing runs (required)")
	flagFormula = flag.String("formula", "ochiai", "suspiciousness formula (ochiai, dstar)")
	flagTop     = flag.Int("top", 10, "number of locations to print")
)

func main() {
	flag.Parse()
	if *flagFailed == "" {
		tool.Failf("usage: deltamin-sbfl -failed=DIR [-passed=DIR] [flags]")
	}
	sess := sbfl.NewSession()
	if err := ingest(sess, *flagFailed, true); err != nil {
		tool.Fail(err)
	}
	if *flagPassed != "" {
		if err := ingest(sess, *flagPassed, false); err != nil {
			tool.Fail(err)
		}
	}
	scores, err := sess.Result(*flagFormula)
	if err != nil {
		tool.Fail(err)
	}
	fmt.Printf("%v runs (%v failed), %v locations, formula %v\n",
		sess.Passed()+sess.Failed(), sess.Failed(), sess.Locations(), *flagFormula)
	for rank, loc := range sbfl.Rank(scores, *flagTop) {
		fmt.Printf("#%v: %#x (%v)\n", rank, loc, scores[loc])
	}
}

// ingest feeds every coverage file in dir into the session. Files are read
// concurrently, but the session itself has a single writer and a fixed
// ingestion order (sorted file names), so results do not depend on I/O
// scheduling.
func ingest(sess *sbfl.Session, dir string, crashed bool) error {
	files, err := osutil.ListDir(dir)
	if err != nil {
		return err
	}
	sort.Strings(files)
	vectors := make([][]byte, len(files))
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, name := range files {
		i, name := i, name
		eg.Go(func() error {
			data, err := osutil.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			vectors[i] = data
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, vec := range vectors {
		sess.AddCoverage(vec, crashed)
	}
	return nil
}
