package retrieval

// ranked is a candidate row during a neighbor scan.
type ranked struct {
	row   int
	score float32
}

// better reports whether r outranks o: higher score first, then lower row.
func (r ranked) better(o ranked) bool {
	if r.score != o.score {
		return r.score > o.score
	}
	return r.row < o.row
}

// rankHeap is a min-heap whose root is the worst kept candidate, so a scan
// keeps the best K rows in O(N log K).
type rankHeap []ranked

func (h rankHeap) Len() int           { return len(h) }
func (h rankHeap) Less(i, j int) bool { return h[j].better(h[i]) }
func (h rankHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankHeap) Push(x any) {
	*h = append(*h, x.(ranked))
}

func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
