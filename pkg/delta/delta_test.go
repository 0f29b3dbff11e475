// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package delta

import (
	"bytes"
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deltamin/deltamin/pkg/edit"
	"github.com/deltamin/deltamin/pkg/testutil"
)

func TestReduceToSingleEdit(t *testing.T) {
	t.Parallel()
	seed := []byte("hello hello hello")
	crash := []byte("hXelloZ hello hellooo!")
	dist, trace := edit.Compute(seed, crash)
	assert.Equal(t, dist, len(trace))
	calls := 0
	reduced, err := Reduce(Config{
		Oracle: func(candidate []byte) (bool, error) {
			calls++
			// Only the edit injecting 'Z' matters.
			return bytes.IndexByte(candidate, 'Z') >= 0, nil
		},
		Logf: t.Logf,
	}, seed, trace)
	assert.NoError(t, err)
	assert.Len(t, reduced, 1)
	assert.Contains(t, string(edit.Apply(reduced, seed, nil)), "Z")
	assert.Greater(t, calls, 0)
}

func TestReduceNothingRemovable(t *testing.T) {
	seed, crash := []byte("abcd"), []byte("wxyz")
	_, trace := edit.Compute(seed, crash)
	reduced, err := Reduce(Config{
		Oracle: func(candidate []byte) (bool, error) {
			// Every edit is needed.
			return bytes.Equal(candidate, crash), nil
		},
		Logf: t.Logf,
	}, seed, trace)
	assert.NoError(t, err)
	assert.Equal(t, trace, reduced)
}

func TestReduceMinimalInput(t *testing.T) {
	trace := edit.Trace{{Kind: edit.OpDelete, Pos: 0}}
	calls := 0
	reduced, err := Reduce(Config{
		Oracle: func([]byte) (bool, error) {
			calls++
			return true, nil
		},
	}, []byte("a"), trace)
	assert.NoError(t, err)
	assert.Equal(t, trace, reduced)
	assert.Equal(t, 0, calls, "an already-minimal trace must not consult the oracle")
}

func TestReduceRunBudget(t *testing.T) {
	seed, crash := []byte("abcd"), []byte("wxyz")
	_, trace := edit.Compute(seed, crash)
	calls := 0
	reduced, err := Reduce(Config{
		Oracle: func([]byte) (bool, error) {
			calls++
			return false, nil
		},
		MaxRuns: 3,
		Logf:    t.Logf,
	}, seed, trace)
	assert.NoError(t, err)
	assert.Equal(t, trace, reduced)
	assert.Equal(t, 3, calls)
}

func TestReduceOracleError(t *testing.T) {
	errTarget := errors.New("target did not start")
	seed, crash := []byte("abcd"), []byte("wxyz")
	_, trace := edit.Compute(seed, crash)
	_, err := Reduce(Config{
		Oracle: func([]byte) (bool, error) {
			return false, errTarget
		},
	}, seed, trace)
	assert.ErrorIs(t, err, errTarget)
}

func TestReduceRandom(t *testing.T) {
	t.Parallel()
	const magic = 0xcc
	r := rand.New(testutil.RandSource(t))
	for i := 0; i < testutil.IterCount()/10; i++ {
		seed := randSeq(r, 1, 30)
		crash := mutate(r, seed, magic)
		_, trace := edit.Compute(seed, crash)
		oracle := func(candidate []byte) (bool, error) {
			return bytes.IndexByte(candidate, magic) >= 0, nil
		}
		ok, _ := oracle(edit.Apply(trace, seed, nil))
		assert.True(t, ok, "the full trace must reproduce")
		reduced, err := Reduce(Config{Oracle: oracle, Logf: t.Logf}, seed, trace)
		assert.NoError(t, err)
		assert.LessOrEqual(t, len(reduced), len(trace))
		ok, _ = oracle(edit.Apply(reduced, seed, nil))
		assert.True(t, ok, "the reduced trace must still reproduce")
		// Reduction is locally minimal here: one edit injects the magic byte.
		assert.Len(t, reduced, 1)
	}
}

// mutate applies a few random byte-level changes to a copy of data and
// injects one magic byte that the oracle will look for.
func mutate(r *rand.Rand, data []byte, magic byte) []byte {
	res := slices.Clone(data)
	for n := r.Intn(5); n > 0 && len(res) > 0; n-- {
		pos := r.Intn(len(res))
		switch r.Intn(3) {
		case 0:
			res = slices.Insert(res, pos, 'a'+byte(r.Intn(6)))
		case 1:
			res = slices.Delete(res, pos, pos+1)
		default:
			res[pos] = 'a' + byte(r.Intn(6))
		}
	}
	return slices.Insert(res, r.Intn(len(res)+1), magic)
}

func randSeq(r *rand.Rand, minLen, maxLen int) []byte {
	data := make([]byte, minLen+r.Intn(maxLen-minLen+1))
	for i := range data {
		data[i] = 'a' + byte(r.Intn(6))
	}
	return data
}
