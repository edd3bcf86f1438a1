package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// signf returns -1 for negative values and +1 otherwise.
func signf(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func sqrtf(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// SmoothDamp moves current towards target with a critically damped spring.
// vel carries the rate of change between calls and is updated in place.
// smoothTime is roughly the time to reach the target.
func SmoothDamp(current, target float32, vel *float32, smoothTime, dt float32) float32 {
	if smoothTime < 1e-4 {
		smoothTime = 1e-4
	}
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (*vel + omega*change) * dt
	*vel = (*vel - omega*temp) * decay
	out := target + (change+temp)*decay

	// Never overshoot the target
	if (target-current > 0) == (out > target) {
		out = target
		*vel = (out - target) / dt
	}
	return out
}
