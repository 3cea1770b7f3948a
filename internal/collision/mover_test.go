package collision

import (
	"math"
	"testing"

	"raycaster/internal/mathutil"
	"raycaster/internal/world"
)

// mockTileChecker implements TileChecker for testing
type mockTileChecker struct {
	width, height int
	blockingTiles map[int]map[int]bool
}

func newMockTileChecker(width, height int) *mockTileChecker {
	m := &mockTileChecker{
		width:         width,
		height:        height,
		blockingTiles: make(map[int]map[int]bool),
	}
	// Solid border like every real grid
	for x := 0; x < width; x++ {
		m.setBlocking(x, 0, true)
		m.setBlocking(x, height-1, true)
	}
	for y := 0; y < height; y++ {
		m.setBlocking(0, y, true)
		m.setBlocking(width-1, y, true)
	}
	return m
}

func (m *mockTileChecker) IsTileBlocking(tileX, tileY int) bool {
	if tileX < 0 || tileX >= m.width || tileY < 0 || tileY >= m.height {
		return true
	}
	if row, ok := m.blockingTiles[tileY]; ok {
		return row[tileX]
	}
	return false
}

func (m *mockTileChecker) GetWorldBounds() (width, height int) {
	return m.width, m.height
}

func (m *mockTileChecker) setBlocking(tileX, tileY int, blocking bool) {
	if m.blockingTiles[tileY] == nil {
		m.blockingTiles[tileY] = make(map[int]bool)
	}
	m.blockingTiles[tileY][tileX] = blocking
}

func TestMove_OpenFloor(t *testing.T) {
	mover := NewMover(newMockTileChecker(10, 10), 0.5)

	got := mover.Forward(mathutil.V(3, 3), mathutil.V(1, 1))
	if !approxEqual(got, mathutil.V(3.5, 3.5), 1e-12) {
		t.Errorf("Expected (3.5, 3.5), got %v", got)
	}

	back := mover.Backward(got, mathutil.V(1, 1))
	if !approxEqual(back, mathutil.V(3, 3), 1e-12) {
		t.Errorf("Expected (3, 3) after backing up, got %v", back)
	}
}

func TestMove_BlockedAxisUnchanged(t *testing.T) {
	checker := newMockTileChecker(10, 10)
	checker.setBlocking(5, 3, true)
	mover := NewMover(checker, 0.1)

	pos := mathutil.V(4.95, 3.5)
	got := mover.Forward(pos, mathutil.V(1, 0))
	if got.X != pos.X {
		t.Errorf("Blocked X should stay %.2f, got %.4f", pos.X, got.X)
	}
	if got.Y != pos.Y {
		t.Errorf("Y should be unchanged, got %.4f", got.Y)
	}
}

func TestMove_WallSliding(t *testing.T) {
	checker := newMockTileChecker(10, 10)
	// Wall column at x = 5
	for y := 1; y < 9; y++ {
		checker.setBlocking(5, y, true)
	}
	mover := NewMover(checker, 0.1)

	pos := mathutil.V(4.95, 3.5)
	dir := mathutil.V(math.Sqrt2/2, math.Sqrt2/2)
	got := mover.Forward(pos, dir)

	if got.X != pos.X {
		t.Errorf("X should be blocked by the wall, got %.4f", got.X)
	}
	if got.Y <= pos.Y {
		t.Errorf("Y should slide along the wall, got %.4f", got.Y)
	}
}

func TestMove_CornerUsesUpdatedX(t *testing.T) {
	checker := newMockTileChecker(10, 10)
	// Only the diagonal cell is solid
	checker.setBlocking(5, 5, true)
	mover := NewMover(checker, 0.2)

	pos := mathutil.V(4.9, 4.9)
	got := mover.Forward(pos, mathutil.V(1, 1))

	// X moves into (5, 4) which is open; Y would then land in (5, 5)
	if got.X <= pos.X {
		t.Errorf("X should advance, got %.4f", got.X)
	}
	if got.Y != pos.Y {
		t.Errorf("Y should be blocked by the diagonal wall, got %.4f", got.Y)
	}
	if !mover.CanOccupy(got) {
		t.Errorf("Mover ended inside a wall at %v", got)
	}
}

func TestMove_NeverEntersWall(t *testing.T) {
	grid := world.ReferenceGrid()
	mover := NewMover(grid, 0.03)

	starts := []mathutil.Vec2{
		mathutil.V(3, 7), mathutil.V(1.5, 1.5), mathutil.V(10.5, 8.5), mathutil.V(18.5, 17.5),
	}
	for _, start := range starts {
		for a := 0; a < 16; a++ {
			angle := float64(a) * math.Pi / 8
			dir := mathutil.V(math.Cos(angle), math.Sin(angle))
			pos := start
			for i := 0; i < 400; i++ {
				pos = mover.Forward(pos, dir)
				if !mover.CanOccupy(pos) {
					t.Fatalf("start %v angle %.2f: entered wall at %v", start, angle, pos)
				}
			}
		}
	}
}

func TestMove_ConvergesAtWall(t *testing.T) {
	grid := world.ReferenceGrid()
	speed := 0.03
	mover := NewMover(grid, speed)

	// Row 7: wall at x = 9, player at x = 3 facing +X
	pos := mathutil.V(3, 7)
	dir := mathutil.V(1, 0)
	for i := 0; i < 1000; i++ {
		pos = mover.Forward(pos, dir)
	}

	if gap := 9 - pos.X; gap < 0 || gap > speed+1e-9 {
		t.Errorf("Expected to stop within %.2f of the wall, gap %.4f", speed, gap)
	}

	// Further pushes are idempotent
	stopped := pos
	for i := 0; i < 10; i++ {
		pos = mover.Forward(pos, dir)
	}
	if pos != stopped {
		t.Errorf("Position kept changing at the wall: %v -> %v", stopped, pos)
	}
}

func TestMoveScaled(t *testing.T) {
	mover := NewMover(newMockTileChecker(10, 10), 0.1)
	got := mover.MoveScaled(mathutil.V(3, 3), mathutil.V(1, 0), 1, 2.5)
	if !approxEqual(got, mathutil.V(3.25, 3), 1e-12) {
		t.Errorf("Expected (3.25, 3), got %v", got)
	}
}

func approxEqual(a, b mathutil.Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}
