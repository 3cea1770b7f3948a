package scene

import (
	"image/color"
	"math"
	"testing"

	"raycaster/internal/mathutil"
	"raycaster/internal/raycast"
	"raycaster/internal/world"
)

const testHeight = 800

func TestLineHeight(t *testing.T) {
	c := NewCompositor(testHeight, world.DefaultTileManager())

	tests := []struct {
		distance float64
		want     int
	}{
		{1, 799}, // 800 / (1 + 1e-7) truncates just below 800
		{2, 399},
		{6, 133},
		{1000, 0},
	}
	for _, tt := range tests {
		if got := c.LineHeight(tt.distance); got != tt.want {
			t.Errorf("LineHeight(%v): expected %d, got %d", tt.distance, tt.want, got)
		}
	}
}

func TestSegment_ReferenceScenario(t *testing.T) {
	c := NewCompositor(testHeight, world.DefaultTileManager())
	hit := raycast.Hit{CellX: 9, CellY: 7, Tile: world.TileRedWall, Side: raycast.SideX, Distance: 6}

	seg := c.Segment(400, 2, hit)

	// lineHeight 133: 400 -/+ 66.5
	if seg.Start != 333.5 || seg.End != 466.5 {
		t.Errorf("Expected [333.5, 466.5], got [%v, %v]", seg.Start, seg.End)
	}
	if seg.Color != (color.RGBA{150, 0, 0, 255}) {
		t.Errorf("Expected red, got %v", seg.Color)
	}
	if seg.X != 400 || seg.Width != 2 {
		t.Errorf("Expected x=400 width=2, got x=%d width=%d", seg.X, seg.Width)
	}
}

func TestSegment_WallAtViewerCapsAtScreen(t *testing.T) {
	c := NewCompositor(testHeight, world.DefaultTileManager())
	hit := raycast.Hit{Tile: world.TileGreenWall, Distance: raycast.DistanceEpsilon}

	seg := c.Segment(0, 2, hit)
	if seg.Start != 0 {
		t.Errorf("Expected start clamped to 0, got %v", seg.Start)
	}
	if seg.End != testHeight-1 {
		t.Errorf("Expected end clamped to %d, got %v", testHeight-1, seg.End)
	}
	if seg.End-seg.Start > testHeight {
		t.Errorf("Segment taller than the screen: %v", seg.End-seg.Start)
	}
}

func TestSegment_FlatShadingByDefault(t *testing.T) {
	c := NewCompositor(testHeight, world.DefaultTileManager())
	x := c.Segment(0, 1, raycast.Hit{Tile: world.TileBlueWall, Side: raycast.SideX, Distance: 3})
	y := c.Segment(0, 1, raycast.Hit{Tile: world.TileBlueWall, Side: raycast.SideY, Distance: 3})
	if x.Color != y.Color {
		t.Errorf("Expected same colour on both sides, got %v and %v", x.Color, y.Color)
	}

	c.SetSideShading(true)
	y = c.Segment(0, 1, raycast.Hit{Tile: world.TileBlueWall, Side: raycast.SideY, Distance: 3})
	if y.Color != (color.RGBA{0, 0, 75, 255}) {
		t.Errorf("Expected halved blue on the Y side, got %v", y.Color)
	}
}

func TestSegment_EmptyTilePanics(t *testing.T) {
	c := NewCompositor(testHeight, world.DefaultTileManager())
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for tile code 0")
		}
	}()
	c.Segment(0, 1, raycast.Hit{Tile: world.TileEmpty, Distance: 1})
}

func TestFrame_BoundsForAllStates(t *testing.T) {
	grid := world.ReferenceGrid()
	caster, err := raycast.NewCaster(grid, 800, 2)
	if err != nil {
		t.Fatalf("NewCaster failed: %v", err)
	}
	c := NewCompositor(testHeight, world.DefaultTileManager())
	hits := make([]raycast.Hit, caster.Columns())
	var segments []Segment

	positions := []mathutil.Vec2{mathutil.V(3, 7), mathutil.V(8.999, 7.5), mathutil.V(1.001, 1.001), mathutil.V(12.5, 10.5)}
	for _, pos := range positions {
		for a := 0; a < 360; a += 10 {
			angle := float64(a) * math.Pi / 180
			dir := mathutil.V(math.Cos(angle), math.Sin(angle))
			plane := mathutil.V(-dir.Y*0.5, dir.X*0.5)

			caster.CastFrame(pos, dir, plane, hits)
			segments = c.Frame(hits, caster.Stride(), segments)

			if len(segments) != len(hits) {
				t.Fatalf("Expected %d segments, got %d", len(hits), len(segments))
			}
			for i, seg := range segments {
				if seg.Start < 0 || seg.End >= testHeight || seg.Start > seg.End {
					t.Fatalf("pos %v angle %d column %d: bad segment [%v, %v]", pos, a, i, seg.Start, seg.End)
				}
				if seg.X != i*2 {
					t.Fatalf("column %d: expected x=%d, got %d", i, i*2, seg.X)
				}
			}
		}
	}
}

func TestFrame_ReusesBuffer(t *testing.T) {
	c := NewCompositor(testHeight, world.DefaultTileManager())
	hits := []raycast.Hit{
		{Tile: world.TileRedWall, Distance: 2},
		{Tile: world.TileGreenWall, Distance: 4},
	}
	buf := make([]Segment, 0, 8)

	out := c.Frame(hits, 2, buf)
	if &out[0] != &buf[:1][0] {
		t.Error("Frame should write into the provided buffer")
	}
	if out[1].X != 2 || out[1].Color != (color.RGBA{0, 150, 0, 255}) {
		t.Errorf("Unexpected second segment: %+v", out[1])
	}
}
