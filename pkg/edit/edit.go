// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package edit computes minimal edit scripts between byte sequences
// and applies them, fully or partially, to produce new sequences.
package edit

import (
	"fmt"
	"strings"
)

// Kind discriminates edit operations.
type Kind uint8

const (
	OpInsert Kind = iota
	OpDelete
	OpSubstitute
)

// Op is a single edit operation. Pos is an index into the sequence as it was
// at the moment the operation was recorded, not into the original sequence.
// Byte is meaningful for OpInsert and OpSubstitute only.
type Op struct {
	Kind Kind
	Pos  int
	Byte byte
}

// Trace is an ordered edit script. Operations are recorded walking from the
// tails of both sequences toward the heads, so earlier entries refer to
// higher (or equal) positions than later ones. A trace must not be modified
// once produced; Apply relies on the recorded order for position validity.
type Trace []Op

// Mask selects which trace entries to apply. It is defined over the exact
// length of its trace; a nil mask selects every entry.
type Mask []bool

func (op Op) String() string {
	switch op.Kind {
	case OpInsert:
		return fmt.Sprintf("Ins(%v, %#x)", op.Pos, op.Byte)
	case OpDelete:
		return fmt.Sprintf("Del(%v)", op.Pos)
	case OpSubstitute:
		return fmt.Sprintf("Sub(%v, %#x)", op.Pos, op.Byte)
	default:
		panic(fmt.Sprintf("unknown edit op kind %v", uint8(op.Kind)))
	}
}

func (tr Trace) String() string {
	parts := make([]string, len(tr))
	for i, op := range tr {
		parts[i] = op.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
