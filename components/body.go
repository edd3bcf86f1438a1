package components

// Body holds the collision shape of a round entity.
type Body struct {
	Radius float32
}

// Scale returns the visual diameter of the body.
func (b Body) Scale() float32 {
	return b.Radius * 2
}
