// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package edit

import "fmt"

// Apply applies the masked entries of trace to a copy of orig, in recorded
// order. The recorded order is what keeps positions valid: operations closer
// to the head of the sequence run after operations closer to the tail, so
// their positions have not shifted yet. Positions that fall outside the
// working sequence (possible once masking removes an operation a later one
// implicitly depended on) are clamped: inserts to the sequence length,
// deletes and substitutions to the last valid index. Any operation on an
// empty working sequence is skipped. Entries beyond the mask's length are
// applied; a nil mask applies the whole trace.
func Apply(trace Trace, orig []byte, mask Mask) []byte {
	res := append([]byte(nil), orig...)
	for i, op := range trace {
		if i < len(mask) && !mask[i] {
			continue
		}
		res = applyOne(op, res)
	}
	return res
}

func applyOne(op Op, data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	switch op.Kind {
	case OpInsert:
		pos := min(op.Pos, len(data))
		data = append(data, 0)
		copy(data[pos+1:], data[pos:])
		data[pos] = op.Byte
		return data
	case OpDelete:
		pos := min(op.Pos, len(data)-1)
		return append(data[:pos], data[pos+1:]...)
	case OpSubstitute:
		pos := min(op.Pos, len(data)-1)
		data[pos] = op.Byte
		return data
	default:
		panic(fmt.Sprintf("unknown edit op kind %v", uint8(op.Kind)))
	}
}
