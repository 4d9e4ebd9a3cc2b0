package snapshot

// Pair holds the two most recent reads of the observed region. Both slices
// always have the same length.
type Pair struct {
	Current  []byte
	Previous []byte
}

// New allocates a zeroed pair of the given size.
func New(size int) *Pair {
	if size < 0 {
		size = 0
	}
	return &Pair{
		Current:  make([]byte, size),
		Previous: make([]byte, size),
	}
}

// Len returns the size of both buffers.
func (p *Pair) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Current)
}

// Commit copies the current read into previous so the next tick diffs
// against this tick's values.
func (p *Pair) Commit() {
	copy(p.Previous, p.Current)
}

// Latest returns a copy of the last committed snapshot.
func (p *Pair) Latest() []byte {
	out := make([]byte, len(p.Previous))
	copy(out, p.Previous)
	return out
}
