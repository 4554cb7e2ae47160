package tilemap

import "slices"

type GID uint32

const Empty GID = 0

type CellStack []GID

func (s CellStack) Top() GID {
	if len(s) == 0 {
		return Empty
	}
	return s[len(s)-1]
}

func (s CellStack) Clone() CellStack {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

func (s CellStack) Equal(other CellStack) bool {
	return slices.Equal(s, other)
}

// Apply returns the stack after painting gid. Painting Empty pops the top
// tile; painting the current top is a no-op.
func (s CellStack) Apply(gid GID) (CellStack, bool) {
	if gid == Empty {
		if len(s) == 0 {
			return s, false
		}
		return s[:len(s)-1].Clone(), true
	}
	if s.Top() == gid {
		return s, false
	}
	out := make(CellStack, len(s), len(s)+1)
	copy(out, s)
	return append(out, gid), true
}

func StackOf(gid GID) CellStack {
	if gid == Empty {
		return nil
	}
	return CellStack{gid}
}
