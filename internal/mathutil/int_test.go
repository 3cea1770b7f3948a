package mathutil

import "testing"

func TestIntHelpers(t *testing.T) {
	if IntMin(3, -2) != -2 || IntMin(-2, 3) != -2 {
		t.Error("IntMin returned the wrong operand")
	}
	if IntAbs(-7) != 7 || IntAbs(7) != 7 || IntAbs(0) != 0 {
		t.Error("IntAbs failed")
	}
}
