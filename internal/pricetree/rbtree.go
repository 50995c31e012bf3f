package pricetree

// rotateLeft performs a left rotation around x. Subtree sizes of x and its
// right child are recomputed; nothing above them changes.
func (t *Tree) rotateLeft(x *node) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	t.replaceChild(x, y)
	y.left = x
	x.parent = y

	y.size = x.size
	x.size = x.count + sizeOf(x.left) + sizeOf(x.right)
}

// rotateRight performs a right rotation around x.
func (t *Tree) rotateRight(x *node) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	t.replaceChild(x, y)
	y.right = x
	x.parent = y

	y.size = x.size
	x.size = x.count + sizeOf(x.left) + sizeOf(x.right)
}

// replaceChild links v into the position held by u under u's parent.
func (t *Tree) replaceChild(u, v *node) {
	switch {
	case u.parent == nil:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

// insertFixup restores red-black properties after insertion.
func (t *Tree) insertFixup(z *node) {
	for isRed(z.parent) {
		gp := z.parent.parent
		if z.parent == gp.left {
			if y := gp.right; isRed(y) {
				z.parent.color = black
				y.color = black
				gp.color = red
				z = gp
				continue
			}
			if z == z.parent.right {
				z = z.parent
				t.rotateLeft(z)
			}
			z.parent.color = black
			z.parent.parent.color = red
			t.rotateRight(z.parent.parent)
		} else {
			if y := gp.left; isRed(y) {
				z.parent.color = black
				y.color = black
				gp.color = red
				z = gp
				continue
			}
			if z == z.parent.left {
				z = z.parent
				t.rotateRight(z)
			}
			z.parent.color = black
			z.parent.parent.color = red
			t.rotateLeft(z.parent.parent)
		}
	}
	t.root.color = black
}

// deleteNode unlinks z, whose entries have already been subtracted from the
// sizes of z and all of its ancestors.
func (t *Tree) deleteNode(z *node) {
	var x, xParent *node
	removedColor := z.color

	switch {
	case z.left == nil:
		x, xParent = z.right, z.parent
		t.replaceChild(z, z.right)
	case z.right == nil:
		x, xParent = z.left, z.parent
		t.replaceChild(z, z.left)
	default:
		y := minimum(z.right)
		removedColor = y.color
		x = y.right

		// y leaves its old position, so the nodes between it and z lose
		// its entries.
		for p := y.parent; p != z; p = p.parent {
			p.size -= y.count
		}

		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			t.replaceChild(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.replaceChild(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
		y.size = y.count + sizeOf(y.left) + sizeOf(y.right)
	}

	z.left, z.right, z.parent = nil, nil, nil

	if removedColor == black {
		t.deleteFixup(x, xParent)
	}
}

// deleteFixup restores red-black properties after deletion. x may be nil,
// so its parent is tracked separately.
func (t *Tree) deleteFixup(x, xParent *node) {
	for x != t.root && !isRed(x) {
		if x == xParent.left {
			w := xParent.right
			if isRed(w) {
				w.color = black
				xParent.color = red
				t.rotateLeft(xParent)
				w = xParent.right
			}
			if !isRed(w.left) && !isRed(w.right) {
				w.color = red
				x, xParent = xParent, xParent.parent
				continue
			}
			if !isRed(w.right) {
				w.left.color = black
				w.color = red
				t.rotateRight(w)
				w = xParent.right
			}
			w.color = xParent.color
			xParent.color = black
			w.right.color = black
			t.rotateLeft(xParent)
			x = t.root
		} else {
			w := xParent.left
			if isRed(w) {
				w.color = black
				xParent.color = red
				t.rotateRight(xParent)
				w = xParent.left
			}
			if !isRed(w.left) && !isRed(w.right) {
				w.color = red
				x, xParent = xParent, xParent.parent
				continue
			}
			if !isRed(w.left) {
				w.right.color = black
				w.color = red
				t.rotateLeft(w)
				w = xParent.left
			}
			w.color = xParent.color
			xParent.color = black
			w.left.color = black
			t.rotateRight(xParent)
			x = t.root
		}
	}
	if x != nil {
		x.color = black
	}
}
