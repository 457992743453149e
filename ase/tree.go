package ase

// depthJump records a layer whose depth was deeper than the number of groups
// open at that point. Such a layer is attached to the innermost open group.
type depthJump struct {
	layer *Layer
	open  int
}

// buildLayerTree turns the flat, depth-tagged layer list into a forest.
//
// The file stores layers parent first, with each layer's depth being the
// number of groups it is nested in. A stack of open groups is enough to
// rebuild the tree in one pass: before placing a layer, close groups until
// the stack is no deeper than the layer.
//
// Children slices of the passed groups are reset before being filled.
func buildLayerTree(layers []*Layer) ([]*Layer, []depthJump) {
	var (
		roots []*Layer
		stack []*Layer
		jumps []depthJump
	)
	for _, l := range layers {
		if l.IsGroup() {
			l.Children = []*Layer{}
		}
	}
	for _, l := range layers {
		for len(stack) > l.Depth {
			stack = stack[:len(stack)-1]
		}
		if l.Depth > len(stack) {
			jumps = append(jumps, depthJump{layer: l, open: len(stack)})
		}

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, l)
		} else {
			roots = append(roots, l)
		}

		if l.IsGroup() {
			stack = append(stack, l)
		}
	}
	return roots, jumps
}

// Walk calls fn for every layer of the forest, parents before children. It
// stops early when fn returns false.
func Walk(roots []*Layer, fn func(l *Layer, depth int) bool) {
	walk(roots, 0, fn)
}

func walk(layers []*Layer, depth int, fn func(*Layer, int) bool) bool {
	for _, l := range layers {
		if !fn(l, depth) {
			return false
		}
		if !walk(l.Children, depth+1, fn) {
			return false
		}
	}
	return true
}
