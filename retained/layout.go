package retained

// ============================================================================
// Layout Policies
// ============================================================================

// Layout is a container's placement policy, selected at construction.
type Layout interface {
	// Arrange positions the container's children. It runs after every
	// change of the container's geometry or child list and whenever a
	// child moves or resizes itself.
	Arrange(c *Container)

	// Membership reports whether Add and Remove may change the child list.
	// A layout returning false keeps the children it was built with.
	Membership() bool
}

// Filler is implemented by layouts that can keep the container rectangle
// equal to its parent surface's rectangle.
type Filler interface {
	Fills() bool
}

// ----------------------------------------------------------------------------
// Center
// ----------------------------------------------------------------------------

// CenterLayout keeps a single child centered in the container. With Fill
// set, the container tracks its parent surface's rectangle and follows its
// resizes.
type CenterLayout struct {
	Fill bool
}

// Arrange places the child at floor((W-w)/2), floor((H-h)/2).
func (l CenterLayout) Arrange(c *Container) {
	if len(c.children) == 0 {
		return
	}
	child := c.children[0]
	child.SetPosition(
		floorDiv(c.owner.width-child.width, 2),
		floorDiv(c.owner.height-child.height, 2),
	)
}

// Membership is false: the child is fixed at construction.
func (CenterLayout) Membership() bool { return false }

// Fills reports whether fill mode is on.
func (l CenterLayout) Fills() bool { return l.Fill }

// ----------------------------------------------------------------------------
// Flow
// ----------------------------------------------------------------------------

// FlowLayout places children left to right in add order, wrapping to a new
// row when a child would cross the container's right edge. Margin surrounds
// every child; adjacent margins do not collapse.
type FlowLayout struct {
	Margin Space
}

// Arrange positions every child.
func (l FlowLayout) Arrange(c *Container) {
	m := l.Margin
	cursorX, cursorY, rowH := 0, 0, 0
	children := acquireWidgetSlice(len(c.children))
	copy(children, c.children)
	for _, child := range children {
		outerW := m.Left + child.width + m.Right
		outerH := m.Top + child.height + m.Bottom
		if cursorX > 0 && cursorX+outerW > c.owner.width {
			cursorX = 0
			cursorY += rowH
			rowH = 0
		}
		child.SetPosition(cursorX+m.Left, cursorY+m.Top)
		cursorX += outerW
		rowH = max(rowH, outerH)
	}
	releaseWidgetSlice(children)
}

// Membership is true.
func (FlowLayout) Membership() bool { return true }
