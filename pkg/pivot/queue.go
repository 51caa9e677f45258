package pivot

// edgeDeque holds the active front. Successful pivots push to the front
// so expansion stays local and depth-first; border revisits push to the
// back. Entries can go stale when an edge's type changes while queued;
// consumers must re-check the type after popping.
type edgeDeque struct {
	edges []*edge
}

func (q *edgeDeque) empty() bool {
	return len(q.edges) == 0
}

func (q *edgeDeque) pushFront(e *edge) {
	q.edges = append(q.edges, nil)
	copy(q.edges[1:], q.edges)
	q.edges[0] = e
}

func (q *edgeDeque) pushBack(e *edge) {
	q.edges = append(q.edges, e)
}

func (q *edgeDeque) popFront() *edge {
	e := q.edges[0]
	q.edges = q.edges[1:]
	return e
}
