package sat

import (
	"encoding/binary"
	"hash/maphash"
)

// One process-wide seed so hashes of structurally equal formulas agree
// across the run.
var seed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of the formula. It mirrors
// Equal: same op, same literal id, and recursively hashed children,
// combined order-dependently.
func (e *Expr) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	e.hashInto(&h)
	return h.Sum64()
}

func (e *Expr) hashInto(h *maphash.Hash) {
	h.WriteByte(byte(e.Op))
	if e.Op == OpLit {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(int64(e.Lit)))
		h.Write(b[:])
		return
	}
	var b [8]byte
	if e.Left != nil {
		binary.LittleEndian.PutUint64(b[:], e.Left.Hash())
		h.Write(b[:])
	}
	if e.Right != nil {
		binary.LittleEndian.PutUint64(b[:], e.Right.Hash())
		h.Write(b[:])
	}
}
