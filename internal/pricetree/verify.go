package pricetree

import (
	"errors"
	"fmt"
)

var ErrCorrupt = errors.New("pricetree: invariant violated")

// Verify walks the whole tree and checks ordering, subtree sizes,
// multiplicities, parent links and the red-black rules. It is O(n) and meant
// for tests and debugging; a non-nil result is always a bug in this package.
func (t *Tree) Verify() error {
	if t.root == nil {
		if t.nodes != 0 {
			return fmt.Errorf("%w: empty tree reports %d nodes", ErrCorrupt, t.nodes)
		}
		return nil
	}
	if t.root.parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrCorrupt)
	}
	if isRed(t.root) {
		return fmt.Errorf("%w: root is red", ErrCorrupt)
	}

	nodes := 0
	if _, err := verify(t.root, nil, nil, &nodes); err != nil {
		return err
	}
	if nodes != t.nodes {
		return fmt.Errorf("%w: counted %d nodes, tracked %d", ErrCorrupt, nodes, t.nodes)
	}
	return nil
}

// verify returns the black height of the subtree rooted at n. lo and hi are
// exclusive key bounds inherited from the ancestors.
func verify(n *node, lo, hi *Price, nodes *int) (int, error) {
	if n == nil {
		return 1, nil
	}
	*nodes++

	if n.count <= 0 {
		return 0, fmt.Errorf("%w: key %d has multiplicity %d", ErrCorrupt, n.key, n.count)
	}
	if (lo != nil && n.key <= *lo) || (hi != nil && n.key >= *hi) {
		return 0, fmt.Errorf("%w: key %d out of order", ErrCorrupt, n.key)
	}
	for _, c := range []*node{n.left, n.right} {
		if c != nil && c.parent != n {
			return 0, fmt.Errorf("%w: broken parent link under key %d", ErrCorrupt, n.key)
		}
	}
	if isRed(n) && (isRed(n.left) || isRed(n.right)) {
		return 0, fmt.Errorf("%w: red key %d has a red child", ErrCorrupt, n.key)
	}

	lh, err := verify(n.left, lo, &n.key, nodes)
	if err != nil {
		return 0, err
	}
	rh, err := verify(n.right, &n.key, hi, nodes)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: black height %d != %d under key %d", ErrCorrupt, lh, rh, n.key)
	}
	if want := n.count + sizeOf(n.left) + sizeOf(n.right); n.size != want {
		return 0, fmt.Errorf("%w: key %d has size %d, want %d", ErrCorrupt, n.key, n.size, want)
	}

	if n.color == black {
		lh++
	}
	return lh, nil
}
