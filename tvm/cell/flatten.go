package cell

// flattenIndex returns unique cells (by hash) in topological order:
// every cell goes before all of its references, so a reference index
// is always bigger than the parent's one. Roots keep their relative order
// when none of them is referenced by another.
func flattenIndex(roots []*Cell) ([]*Cell, map[[32]byte]int) {
	visited := map[[32]byte]bool{}
	post := make([]*Cell, 0, len(roots))

	var visit func(c *Cell)
	visit = func(c *Cell) {
		if visited[c.hash] {
			return
		}
		visited[c.hash] = true

		// reverse, to have refs in direct order after the final flip
		for i := len(c.refs) - 1; i >= 0; i-- {
			visit(c.refs[i])
		}
		post = append(post, c)
	}

	for i := len(roots) - 1; i >= 0; i-- {
		visit(roots[i])
	}

	ordered := make([]*Cell, len(post))
	index := make(map[[32]byte]int, len(post))
	for i, c := range post {
		id := len(post) - 1 - i
		ordered[id] = c
		index[c.hash] = id
	}

	return ordered, index
}
