package game

// Input is one tick of player intent. Front ends and the autopilot fill it.
// Fire, Pause and Restart are edge-triggered: set them only on the tick the
// key was pressed.
type Input struct {
	MoveX   float32 // -1 left, +1 right
	Fire    bool
	Pause   bool
	Restart bool
}

// clampMove limits a move axis to [-1, 1].
func clampMove(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
