package scroll

// ElementPosition returns the document-relative position of n by summing
// offsets along its offset-parent chain.
func ElementPosition(n Node) Position {
	var p Position
	for cur := n; cur != nil; cur = cur.OffsetParent() {
		p.Top += cur.OffsetTop()
		p.Left += cur.OffsetLeft()
	}
	return p
}
