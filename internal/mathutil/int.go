package mathutil

// IntMin returns the smaller of two ints
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntAbs returns the absolute value of an int
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
