package tui

import (
	"testing"
	"time"

	"deep-miner/internal/render"
	"deep-miner/internal/world"
)

func TestGlyphForCoversPalette(t *testing.T) {
	for v := 0; v < len(render.Palette()); v++ {
		g := GlyphFor(uint8(v))
		if g.Rune == '?' {
			t.Fatalf("raster value %d has no glyph", v)
		}
	}
	if GlyphFor(uint8(world.Gold)).Rune != '$' {
		t.Fatalf("gold should be drawn as $")
	}
	fog := GlyphFor(render.FogIndex)
	if fog.FG != fog.BG {
		t.Fatalf("fog should be a solid cell")
	}
	if GlyphFor(250) != fog {
		t.Fatalf("out of range values should draw as fog")
	}
}

func TestBuildingRunes(t *testing.T) {
	seen := map[rune]bool{}
	for _, b := range world.Buildings(world.DefaultParams()) {
		r := BuildingRune(b.Kind)
		if r == '?' || seen[r] {
			t.Fatalf("building %s has rune %q", b.Kind, r)
		}
		seen[r] = true
	}
}

func TestHoldInputExpires(t *testing.T) {
	h := newHoldInput(200 * time.Millisecond)
	now := time.Unix(100, 0)
	h.press(dirLeft, now)
	h.pressInteract()

	in := h.snapshot(now.Add(50 * time.Millisecond))
	if !in.Left || in.Right || !in.Interact {
		t.Fatalf("unexpected input %+v", in)
	}
	if in := h.snapshot(now.Add(60 * time.Millisecond)); in.Interact {
		t.Fatalf("interact should be consumed")
	}
	if in := h.snapshot(now.Add(300 * time.Millisecond)); in.Left {
		t.Fatalf("left should have expired")
	}
}

func TestHoldInputOppositeCancels(t *testing.T) {
	h := newHoldInput(time.Second)
	now := time.Unix(0, 0)
	h.press(dirLeft, now)
	h.press(dirRight, now)
	h.press(dirDown, now)
	in := h.snapshot(now)
	if in.Left || !in.Right || !in.Down || in.Up {
		t.Fatalf("unexpected input %+v", in)
	}
	h.release()
	if in := h.snapshot(now); in.Right || in.Down {
		t.Fatalf("release should clear held keys: %+v", in)
	}
}
