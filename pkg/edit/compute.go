// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package edit

// cell is one entry of the DP grid: the minimum distance to transform a
// prefix of from into a prefix of to, the operation achieving it, and the
// predecessor cell. edit=false marks a diagonal match with no operation
// recorded.
type cell struct {
	dist    int
	op      Op
	edit    bool
	prevRow int
	prevCol int
}

// Compute returns the minimum edit distance between from and to and one
// canonical trace achieving it. When several neighbors of a grid cell reach
// the same minimum, insert wins over delete and delete over substitute, so
// the trace is deterministic for a given input pair. The trace is ordered
// from the tails of the sequences toward the heads (see Trace).
// O(|from|*|to|) time and space. Equal inputs yield (0, nil).
func Compute(from, to []byte) (int, Trace) {
	// grid[i][j] is the minimum distance to reach to[:j] from from[:i].
	grid := make([][]cell, len(from)+1)
	for i := range grid {
		grid[i] = make([]cell, len(to)+1)
	}
	for i := 1; i <= len(from); i++ {
		grid[i][0] = cell{
			dist:    i,
			op:      Op{Kind: OpDelete, Pos: i - 1},
			edit:    true,
			prevRow: i - 1,
		}
	}
	for j := 1; j <= len(to); j++ {
		// Row 0 means all of from is consumed, so the remaining inserts
		// land at the head of the working sequence (Pos = i = 0, same rule
		// as the interior insert case). Recording the target index here
		// instead would let a later trace entry carry a higher position
		// than an earlier one, and Apply would place the byte at the tail.
		grid[0][j] = cell{
			dist:    j,
			op:      Op{Kind: OpInsert, Pos: 0, Byte: to[j-1]},
			edit:    true,
			prevCol: j - 1,
		}
	}
	for i := 1; i <= len(from); i++ {
		for j := 1; j <= len(to); j++ {
			if from[i-1] == to[j-1] {
				grid[i][j] = cell{
					dist:    grid[i-1][j-1].dist,
					prevRow: i - 1,
					prevCol: j - 1,
				}
				continue
			}
			ins, del, sub := grid[i][j-1].dist, grid[i-1][j].dist, grid[i-1][j-1].dist
			best := min(ins, del, sub)
			switch {
			case best == ins:
				grid[i][j] = cell{
					dist:    best + 1,
					op:      Op{Kind: OpInsert, Pos: i, Byte: to[j-1]},
					edit:    true,
					prevRow: i,
					prevCol: j - 1,
				}
			case best == del:
				grid[i][j] = cell{
					dist:    best + 1,
					op:      Op{Kind: OpDelete, Pos: i - 1},
					edit:    true,
					prevRow: i - 1,
					prevCol: j,
				}
			default:
				grid[i][j] = cell{
					dist:    best + 1,
					op:      Op{Kind: OpSubstitute, Pos: i - 1, Byte: to[j-1]},
					edit:    true,
					prevRow: i - 1,
					prevCol: j - 1,
				}
			}
		}
	}
	return grid[len(from)][len(to)].dist, backtrace(grid)
}

func backtrace(grid [][]cell) Trace {
	var trace Trace
	i, j := len(grid)-1, len(grid[0])-1
	for i > 0 || j > 0 {
		c := grid[i][j]
		if c.edit {
			trace = append(trace, c.op)
		}
		i, j = c.prevRow, c.prevCol
	}
	return trace
}

// Distance returns only the edit distance between from and to. It agrees
// with Compute on every input pair, but keeps a single DP row instead of the
// full grid, so it is the cheaper choice when no trace is needed (e.g. when
// scanning a seed pool).
func Distance(from, to []byte) int {
	row := make([]int, len(to)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(from); i++ {
		diag := row[0] // grid[i-1][j-1]
		row[0] = i
		for j := 1; j <= len(to); j++ {
			up := row[j]
			cost := diag
			if from[i-1] != to[j-1] {
				cost++
			}
			row[j] = min(cost, row[j-1]+1, up+1)
			diag = up
		}
	}
	return row[len(to)]
}
