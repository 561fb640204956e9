package preview

import (
	"testing"

	"github.com/mrigankad/tracer/color"
)

// Window/Renderer creation requires a real GLFW display and OpenGL
// context, so only the pure pixel-conversion logic is covered here.

func TestToByteClamps(t *testing.T) {
	if got := toByte(-1); got != 0 {
		t.Errorf("toByte(-1) = %d, want 0", got)
	}
	if got := toByte(2); got != 255 {
		t.Errorf("toByte(2) = %d, want 255", got)
	}
}

func TestToRGBAPacksFourBytesPerPixel(t *testing.T) {
	pixels := []color.Color{color.White, color.Black}
	out := toRGBA(pixels)
	if len(out) != 8 {
		t.Fatalf("expected 8 bytes for 2 pixels, got %d", len(out))
	}
	if out[0] != 255 || out[1] != 255 || out[2] != 255 || out[3] != 255 {
		t.Errorf("expected white pixel to pack as opaque white, got %v", out[:4])
	}
	if out[4] != 0 || out[5] != 0 || out[6] != 0 || out[7] != 255 {
		t.Errorf("expected black pixel to pack as opaque black, got %v", out[4:8])
	}
}
