// Package pricetree implements an order-statistics multiset of prices.
//
// The multiset is a red-black tree. Equal prices are folded into one node
// that carries a multiplicity, and every node counts the entries in its
// subtree so rank and selection queries run in O(log n):
//
//  1. Every node is either red or black
//  2. The root is black
//  3. A red node has no red children
//  4. Every path from a node to a nil leaf crosses the same number of black nodes
//
// A Tree is not safe for concurrent use. Callers sharing one must hold a
// lock around every call.
package pricetree

import (
	"errors"
	"fmt"
	"iter"
)

var ErrInvalidRange = errors.New("invalid range")

type color bool

const (
	red   color = true
	black color = false
)

type node struct {
	key    Price
	count  int // multiplicity of key, never zero while linked
	size   int // entries in this subtree, duplicates included
	color  color
	left   *node
	right  *node
	parent *node
}

func sizeOf(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func isRed(n *node) bool {
	return n != nil && n.color == red
}

// Tree is an order-statistics multiset of prices.
type Tree struct {
	root  *node
	nodes int
}

func New() *Tree {
	return &Tree{}
}

// Len returns the number of entries, duplicates included.
func (t *Tree) Len() int {
	return sizeOf(t.root)
}

// Distinct returns the number of distinct prices.
func (t *Tree) Distinct() int {
	return t.nodes
}

// Insert adds one occurrence of v.
// Time complexity: O(log n)
func (t *Tree) Insert(v Price) {
	var parent *node
	for n := t.root; n != nil; {
		// Every node on the search path gains the new entry, whether it
		// ends up folded into an existing node or attached as a leaf.
		n.size++
		switch {
		case v < n.key:
			parent, n = n, n.left
		case v > n.key:
			parent, n = n, n.right
		default:
			n.count++
			return
		}
	}

	z := &node{key: v, count: 1, size: 1, color: red, parent: parent}
	t.nodes++
	switch {
	case parent == nil:
		t.root = z
	case v < parent.key:
		parent.left = z
	default:
		parent.right = z
	}
	t.insertFixup(z)
}

// RemoveOne removes one occurrence of v and reports whether v was present.
// Removing an absent price is a no-op.
// Time complexity: O(log n)
func (t *Tree) RemoveOne(v Price) bool {
	z := t.search(v)
	if z == nil {
		return false
	}

	for p := z; p != nil; p = p.parent {
		p.size--
	}
	z.count--
	if z.count > 0 {
		return true
	}

	t.deleteNode(z)
	t.nodes--
	return true
}

// Contains reports whether at least one occurrence of v is stored.
func (t *Tree) Contains(v Price) bool {
	return t.search(v) != nil
}

// Count returns the multiplicity of v.
func (t *Tree) Count(v Price) int {
	if n := t.search(v); n != nil {
		return n.count
	}
	return 0
}

// Min returns the smallest stored price.
func (t *Tree) Min() (Price, bool) {
	if t.root == nil {
		return 0, false
	}
	return minimum(t.root).key, true
}

// Max returns the largest stored price.
func (t *Tree) Max() (Price, bool) {
	if t.root == nil {
		return 0, false
	}
	return maximum(t.root).key, true
}

// Select returns the k-th smallest entry, 1-indexed, counting every
// occurrence of repeated prices.
// Time complexity: O(log n)
func (t *Tree) Select(k int) (Price, bool) {
	if k < 1 || k > t.Len() {
		return 0, false
	}

	n := t.root
	for n != nil {
		ls := sizeOf(n.left)
		switch {
		case k <= ls:
			n = n.left
		case k <= ls+n.count:
			return n.key, true
		default:
			k -= ls + n.count
			n = n.right
		}
	}
	return 0, false
}

// Median returns the median entry. For an even number of entries it is the
// mean of the two middle entries. It returns false when the tree is empty.
// Time complexity: O(log n)
func (t *Tree) Median() (Median, bool) {
	n := t.Len()
	if n == 0 {
		return Median{}, false
	}

	if n%2 == 1 {
		mid, _ := t.Select((n + 1) / 2)
		return medianOf(mid, mid), true
	}

	lo, _ := t.Select(n / 2)
	hi, _ := t.Select(n/2 + 1)
	return medianOf(lo, hi), true
}

// Rank returns the number of entries strictly less than v.
// Time complexity: O(log n)
func (t *Tree) Rank(v Price) int {
	rank := 0
	for n := t.root; n != nil; {
		if v <= n.key {
			n = n.left
			continue
		}
		rank += sizeOf(n.left) + n.count
		n = n.right
	}
	return rank
}

// rankAtMost returns the number of entries less than or equal to v.
func (t *Tree) rankAtMost(v Price) int {
	rank := 0
	for n := t.root; n != nil; {
		if v < n.key {
			n = n.left
			continue
		}
		rank += sizeOf(n.left) + n.count
		n = n.right
	}
	return rank
}

// CountInRange returns the number of entries in [low, high].
// Time complexity: O(log n)
func (t *Tree) CountInRange(low, high Price) (int, error) {
	if low > high {
		return 0, fmt.Errorf("%w: low %d > high %d", ErrInvalidRange, low, high)
	}
	return t.rankAtMost(high) - t.Rank(low), nil
}

// ValuesInRange returns the entries in [low, high] in ascending order, each
// occurrence of a repeated price yielded separately. The sequence is lazy
// and may be ranged over more than once; it must not be consumed while the
// tree is being modified.
// Time complexity: O(log n + k) for k yielded entries.
func (t *Tree) ValuesInRange(low, high Price) (iter.Seq[Price], error) {
	if low > high {
		return nil, fmt.Errorf("%w: low %d > high %d", ErrInvalidRange, low, high)
	}

	return func(yield func(Price) bool) {
		for n := t.lowerBound(low); n != nil && n.key <= high; n = successor(n) {
			for i := 0; i < n.count; i++ {
				if !yield(n.key) {
					return
				}
			}
		}
	}, nil
}

// All returns every entry in ascending order.
func (t *Tree) All() iter.Seq[Price] {
	return func(yield func(Price) bool) {
		if t.root == nil {
			return
		}
		for n := minimum(t.root); n != nil; n = successor(n) {
			for i := 0; i < n.count; i++ {
				if !yield(n.key) {
					return
				}
			}
		}
	}
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	return height(t.root)
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// search finds the node holding v.
func (t *Tree) search(v Price) *node {
	n := t.root
	for n != nil {
		switch {
		case v < n.key:
			n = n.left
		case v > n.key:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// lowerBound finds the first node whose key is >= v.
func (t *Tree) lowerBound(v Price) *node {
	var found *node
	for n := t.root; n != nil; {
		if n.key >= v {
			found = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return found
}

func minimum(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

func maximum(n *node) *node {
	for n.right != nil {
		n = n.right
	}
	return n
}

// successor returns the next node in order.
func successor(n *node) *node {
	if n.right != nil {
		return minimum(n.right)
	}
	p := n.parent
	for p != nil && n == p.right {
		n, p = p, p.parent
	}
	return p
}
