// SPDX-License-Identifier: Unlicense OR MIT

package layout

import "kernelui.dev/geom"

// axisExtent returns (main, cross) for a Size under dir.
func axisExtent(dir Direction, s geom.Size) (main, cross float32) {
	if dir == Row {
		return s.W, s.H
	}
	return s.H, s.W
}

func makeSize(dir Direction, main, cross float32) geom.Size {
	if dir == Row {
		return geom.Size{W: main, H: cross}
	}
	return geom.Size{W: cross, H: main}
}

// measureFlex implements the two-pass algorithm spec.md §4.F calls "the
// standard two-pass flex algorithm (sum of bases, distribute remainder by
// grow factor, shrink by shrink factor weighted by base)".
func (t *Tree) measureFlex(n *Node, c Constraints) Dimensions {
	dir := n.style.Direction
	mainMax, crossMax := axisExtent(dir, geom.Size{W: c.MaxWidth, H: c.MaxHeight})
	mainMin, crossMin := axisExtent(dir, geom.Size{W: c.MinWidth, H: c.MinHeight})

	padMain, padCross := paddingExtent(dir, n.style)
	innerMax := mainMax - padMain
	if innerMax < 0 {
		innerMax = 0
	}

	gap := n.style.Gap
	bases := make([]float32, len(n.children))
	var sumBase float32
	var sumGrow, sumShrink float32
	crossNeeded := float32(0)

	loose := Constraints{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight}
	if dir == Row {
		loose.MaxWidth = innerMax
	} else {
		loose.MaxHeight = innerMax
	}

	for i, childID := range n.children {
		child := t.node(childID)
		var base float32
		if child.style.Basis.Kind == geom.LengthAuto {
			dims := t.measure(childID, loose)
			base, _ = axisExtent(dir, dims.Size)
		} else {
			base = child.style.Basis.Resolve(innerMax, 0)
		}
		bases[i] = base
		sumBase += base
		sumGrow += child.style.Grow
		sumShrink += child.style.Shrink * base
	}
	if len(n.children) > 1 {
		sumBase += gap * float32(len(n.children)-1)
	}

	remainder := innerMax - sumBase
	finals := make([]float32, len(n.children))
	for i, childID := range n.children {
		child := t.node(childID)
		final := bases[i]
		switch {
		case remainder > 0 && sumGrow > 0:
			final += remainder * (child.style.Grow / sumGrow)
		case remainder < 0 && sumShrink > 0:
			weight := (child.style.Shrink * bases[i]) / sumShrink
			final += remainder * weight
		}
		if final < 0 {
			final = 0
		}
		finals[i] = final

		var childCross float32
		crossConstraint := Constraints{MinWidth: c.MinWidth, MaxWidth: c.MaxWidth, MinHeight: c.MinHeight, MaxHeight: c.MaxHeight}
		if dir == Row {
			crossConstraint.MinWidth, crossConstraint.MaxWidth = final, final
		} else {
			crossConstraint.MinHeight, crossConstraint.MaxHeight = final, final
		}
		if n.style.Align == AlignStretch {
			stretchTo := crossMax - padCross
			if dir == Row {
				crossConstraint.MinHeight, crossConstraint.MaxHeight = stretchTo, stretchTo
			} else {
				crossConstraint.MinWidth, crossConstraint.MaxWidth = stretchTo, stretchTo
			}
		}
		dims := t.measure(childID, crossConstraint)
		_, childCross = axisExtent(dir, dims.Size)
		if childCross > crossNeeded {
			crossNeeded = childCross
		}
	}

	mainSize := sumBase
	if remainder > 0 && sumGrow > 0 {
		mainSize = innerMax
	}
	mainSize += padMain
	if mainSize < mainMin {
		mainSize = mainMin
	}
	if mainSize > mainMax {
		mainSize = mainMax
	}

	crossSize := crossNeeded + padCross
	if crossSize < crossMin {
		crossSize = crossMin
	}
	if crossSize > crossMax && crossMax > 0 {
		crossSize = crossMax
	}

	return Dimensions{Size: makeSize(dir, mainSize, crossSize)}
}

func paddingExtent(dir Direction, s Style) (main, cross float32) {
	top := s.PaddingTop.Resolve(0, 0)
	bottom := s.PaddingBottom.Resolve(0, 0)
	left := s.PaddingLeft.Resolve(0, 0)
	right := s.PaddingRight.Resolve(0, 0)
	if dir == Row {
		return left + right, top + bottom
	}
	return top + bottom, left + right
}

// placeFlexChildren positions n's children within bounds according to the
// container's Justify (main axis) and Align (cross axis), having already
// computed each child's Dimensions during measureFlex.
func (t *Tree) placeFlexChildren(n *Node, bounds geom.Bounds) {
	dir := n.style.Direction
	padTop := n.style.PaddingTop.Resolve(0, 0)
	padLeft := n.style.PaddingLeft.Resolve(0, 0)
	padBottom := n.style.PaddingBottom.Resolve(0, 0)
	padRight := n.style.PaddingRight.Resolve(0, 0)

	innerOrigin := geom.Point{X: bounds.Origin.X + padLeft, Y: bounds.Origin.Y + padTop}
	innerSize := geom.Size{W: bounds.Size.W - padLeft - padRight, H: bounds.Size.H - padTop - padBottom}

	mainAvail, _ := axisExtent(dir, innerSize)
	gap := n.style.Gap

	var sumMain float32
	childMain := make([]float32, len(n.children))
	for i, childID := range n.children {
		m, _ := axisExtent(dir, t.node(childID).dims.Size)
		childMain[i] = m
		sumMain += m
	}
	if len(n.children) > 1 {
		sumMain += gap * float32(len(n.children)-1)
	}
	free := mainAvail - sumMain
	if free < 0 {
		free = 0
	}

	pos, step := justifyStart(n.style.Justify, free, len(n.children))

	for i, childID := range n.children {
		child := t.node(childID)
		m, cr := axisExtent(dir, child.dims.Size)
		crossOffset := alignOffset(n.style.Align, axisCross(dir, innerSize), cr)
		var childOrigin geom.Point
		if dir == Row {
			childOrigin = geom.Point{X: innerOrigin.X + pos, Y: innerOrigin.Y + crossOffset}
		} else {
			childOrigin = geom.Point{X: innerOrigin.X + crossOffset, Y: innerOrigin.Y + pos}
		}
		t.place(childID, geom.Bounds{Origin: childOrigin, Size: child.dims.Size})
		pos += m + gap + step
	}
}

func axisCross(dir Direction, s geom.Size) float32 {
	_, cross := axisExtent(dir, s)
	return cross
}

func justifyStart(j Justify, free float32, n int) (start, step float32) {
	switch j {
	case JustifyEnd:
		return free, 0
	case JustifyCenter:
		return free / 2, 0
	case JustifySpaceBetween:
		if n > 1 {
			return 0, free / float32(n-1)
		}
		return 0, 0
	case JustifySpaceAround:
		if n > 0 {
			unit := free / float32(n)
			return unit / 2, unit
		}
		return 0, 0
	default:
		return 0, 0
	}
}

func alignOffset(a Align, avail, size float32) float32 {
	switch a {
	case AlignEnd:
		return avail - size
	case AlignCenter:
		return (avail - size) / 2
	default:
		return 0
	}
}
