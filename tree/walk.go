// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// WalkUp calls the given function on the node and all of its parents.
// It stops walking if the function returns [Break] and keeps walking if
// it returns [Continue]. It returns whether walking was finished (false
// if it was aborted with [Break]).
func (a *Arena[T]) WalkUp(h Handle, fun func(h Handle) bool) bool {
	for cur := h; a.Valid(cur); cur = a.Parent(cur) {
		if !fun(cur) {
			return false
		}
	}
	return true
}

// WalkUpParent calls the given function on all of the node's parents
// (but not the node itself). See [Arena.WalkUp].
func (a *Arena[T]) WalkUpParent(h Handle, fun func(h Handle) bool) bool {
	return a.WalkUp(a.Parent(h), fun)
}

// WalkDown calls the given function on the node and all of its
// descendants in depth-first pre-order. It does not descend into the
// children of a node for which the function returns [Break].
// It is non-recursive: the intrusive sibling links are the traversal
// state, so nodes must not be moved by the function.
func (a *Arena[T]) WalkDown(h Handle, fun func(h Handle) bool) {
	if !a.Valid(h) {
		return
	}
	cur := h
	for {
		descend := fun(cur)
		if descend {
			if c := a.FirstChild(cur); !c.IsNil() {
				cur = c
				continue
			}
		}
		// ascent branch: move to the right and then up
		for {
			if cur == h {
				return
			}
			if nxt := a.NextSibling(cur); !nxt.IsNil() {
				cur = nxt
				break
			}
			cur = a.Parent(cur)
			if cur.IsNil() {
				return
			}
		}
	}
}

// WalkDownPost iterates in a depth-first manner over the children, calling
// shouldContinue on each node to test if processing should proceed (if it returns
// [Break] then that branch of the tree is not further processed),
// and then calls the given function after all of a node's children
// have been iterated over. In effect, this means that the given function
// is called for deeper nodes first.
func (a *Arena[T]) WalkDownPost(h Handle, shouldContinue func(h Handle) bool, fun func(h Handle) bool) {
	if !a.Valid(h) {
		return
	}
	if shouldContinue(h) {
		for c := range a.Children(h) {
			a.WalkDownPost(c, shouldContinue, fun)
		}
	}
	fun(h)
}

// WalkDownBreadth calls the given function on the node and all of its
// descendants in breadth-first order. It does not enqueue the children
// of a node for which the function returns [Break].
func (a *Arena[T]) WalkDownBreadth(h Handle, fun func(h Handle) bool) {
	if !a.Valid(h) {
		return
	}
	queue := []Handle{h}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if fun(cur) {
			queue = append(queue, a.ChildList(cur)...)
		}
	}
}

// Root returns the root of the tree containing the given node.
func (a *Arena[T]) Root(h Handle) Handle {
	root := Nil
	a.WalkUp(h, func(n Handle) bool {
		root = n
		return Continue
	})
	return root
}

// Depth returns the number of ancestors of the given node.
func (a *Arena[T]) Depth(h Handle) int {
	d := -1
	a.WalkUp(h, func(Handle) bool {
		d++
		return Continue
	})
	return d
}

// IsAncestor returns whether anc is the node itself or one of its ancestors.
func (a *Arena[T]) IsAncestor(anc, h Handle) bool {
	return !a.WalkUp(h, func(n Handle) bool { return n != anc })
}

// Last returns the last node in the subtree of the given node in
// pre-order, which is the deepest last descendant.
func (a *Arena[T]) Last(h Handle) Handle {
	for {
		l := a.LastChild(h)
		if l.IsNil() {
			return h
		}
		h = l
	}
}

// Previous returns the previous node in pre-order,
// or [Nil] if this is the root node.
func (a *Arena[T]) Previous(h Handle) Handle {
	if prev := a.PrevSibling(h); !prev.IsNil() {
		return a.Last(prev)
	}
	return a.Parent(h)
}

// Next returns the next node in pre-order,
// or [Nil] if this is the last node.
func (a *Arena[T]) Next(h Handle) Handle {
	if c := a.FirstChild(h); !c.IsNil() {
		return c
	}
	for cur := h; !cur.IsNil(); cur = a.Parent(cur) {
		if nxt := a.NextSibling(cur); !nxt.IsNil() {
			return nxt
		}
	}
	return Nil
}
