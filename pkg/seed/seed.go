// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package seed loads seed corpora and selects minimization starting points.
package seed

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/deltamin/deltamin/pkg/edit"
	"github.com/deltamin/deltamin/pkg/log"
	"github.com/deltamin/deltamin/pkg/osutil"
)

// Configuration errors.
var (
	ErrEmptyPool   = errors.New("seed pool is empty")
	ErrMissingPath = errors.New("seed path does not exist")
)

// Load reads a seed pool from path. A directory yields every regular file in
// it, in whatever order the filesystem enumerates them; a regular file
// yields a one-element pool. An empty path yields the builtin default pool.
func Load(path string) ([][]byte, error) {
	if path == "" {
		log.Logf(0, "no seed path specified, using %q as the default seed", "hello")
		return [][]byte{[]byte("hello")}, nil
	}
	if !osutil.IsExist(path) {
		return nil, fmt.Errorf("%w: %v", ErrMissingPath, path)
	}
	if !osutil.IsDir(path) {
		data, err := readSeed(path)
		if err != nil {
			return nil, err
		}
		return [][]byte{data}, nil
	}
	files, err := osutil.ListDir(path)
	if err != nil {
		return nil, err
	}
	var pool [][]byte
	for _, file := range files {
		data, err := readSeed(filepath.Join(path, file))
		if err != nil {
			return nil, err
		}
		pool = append(pool, data)
	}
	log.Logf(0, "read %v seeds from %v", len(pool), path)
	return pool, nil
}

// Closest returns the pool element with the minimum edit distance to target.
// Ties keep the first seed in scan order.
func Closest(pool [][]byte, target []byte) ([]byte, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	best, bestDist := pool[0], edit.Distance(pool[0], target)
	for _, s := range pool[1:] {
		if dist := edit.Distance(s, target); dist < bestDist {
			best, bestDist = s, dist
		}
	}
	return best, nil
}

func readSeed(path string) ([]byte, error) {
	data, err := osutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed %v: %w", path, err)
	}
	log.Logf(1, "read %v seed bytes from %v", len(data), path)
	return data, nil
}
