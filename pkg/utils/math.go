package utils

// Saturate maps a non-negative raw score onto [0,1) with raw/(1+raw).
// The transform is strictly increasing, so an added score contribution can
// never lower the normalized value, and relative order is preserved.
func Saturate(raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	return raw / (1 + raw)
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
