// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deltamin/deltamin/pkg/osutil"
)

func TestClosest(t *testing.T) {
	pool := [][]byte{[]byte("hello"), []byte("world")}
	got, err := Closest(pool, []byte("hellp"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestClosestTie(t *testing.T) {
	// Both seeds are at distance 1; the first in scan order wins.
	pool := [][]byte{[]byte("ab"), []byte("ba")}
	got, err := Closest(pool, []byte("aa"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("ab"), got)
}

func TestClosestEmptyPool(t *testing.T) {
	_, err := Closest(nil, []byte("x"))
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestLoadDefault(t *testing.T) {
	pool, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("hello")}, pool)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent"))
	assert.ErrorIs(t, err, ErrMissingPath)
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "seed")
	assert.NoError(t, osutil.WriteFile(file, []byte("corpus entry")))
	pool, err := Load(file)
	assert.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("corpus entry")}, pool)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	want := map[string][]byte{
		"a": []byte("first"),
		"b": []byte("second"),
		"c": []byte("third"),
	}
	for name, data := range want {
		assert.NoError(t, osutil.WriteFile(filepath.Join(dir, name), data))
	}
	// Subdirectories are not seeds.
	assert.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	pool, err := Load(dir)
	assert.NoError(t, err)
	assert.ElementsMatch(t, [][]byte{want["a"], want["b"], want["c"]}, pool)
}
