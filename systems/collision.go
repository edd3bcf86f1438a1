package systems

// Contact describes a circle overlapping a box.
// (NX, NY) is the unit normal pointing from the box towards the circle centre.
type Contact struct {
	NX, NY float32
	Depth  float32
}

// CircleAABB tests a circle at (cx, cy) with radius r against a box centred at
// (bx, by) with half extents (hw, hh). Circles that only touch the box do not collide.
func CircleAABB(cx, cy, r, bx, by, hw, hh float32) (Contact, bool) {
	qx := clampFloat(cx, bx-hw, bx+hw)
	qy := clampFloat(cy, by-hh, by+hh)
	dx := cx - qx
	dy := cy - qy
	d2 := dx*dx + dy*dy
	if d2 >= r*r {
		return Contact{}, false
	}
	if d2 > 1e-12 {
		d := sqrtf(d2)
		return Contact{NX: dx / d, NY: dy / d, Depth: r - d}, true
	}

	// Centre inside the box: leave through the nearest face.
	left := cx - (bx - hw)
	right := (bx + hw) - cx
	down := cy - (by - hh)
	up := (by + hh) - cy

	c := Contact{NX: 0, NY: 1, Depth: up + r}
	if down < up && down <= left && down <= right {
		c = Contact{NX: 0, NY: -1, Depth: down + r}
	} else if left < up && left <= right && left <= down {
		c = Contact{NX: -1, NY: 0, Depth: left + r}
	} else if right < up && right < left && right <= down {
		c = Contact{NX: 1, NY: 0, Depth: right + r}
	}
	return c, true
}

// BoxCircleOverlap reports whether a box and a circle overlap.
func BoxCircleOverlap(bx, by, hw, hh, cx, cy, r float32) bool {
	_, hit := CircleAABB(cx, cy, r, bx, by, hw, hh)
	return hit
}
