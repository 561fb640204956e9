package imageio

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/mrigankad/tracer/color"
	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/rmath"
)

func TestWritePPMHeaderAndSize(t *testing.T) {
	var buf bytes.Buffer
	pixels := []color.Color{color.White, color.Black, color.New(0.5, 0.5, 0.5), color.Black}
	if err := WritePPM(&buf, 2, 2, pixels); err != nil {
		t.Fatalf("WritePPM: %v", err)
	}

	r := bufio.NewReader(&buf)
	var magic string
	var w, h, maxVal int
	if _, err := fmt.Fscan(r, &magic, &w, &h, &maxVal); err != nil {
		t.Fatalf("parsing header: %v", err)
	}
	if magic != "P6" || w != 2 || h != 2 || maxVal != 255 {
		t.Errorf("unexpected header: %s %d %d %d", magic, w, h, maxVal)
	}
}

func TestWritePPMRejectsMismatchedPixelCount(t *testing.T) {
	var buf bytes.Buffer
	err := WritePPM(&buf, 4, 4, []color.Color{color.White})
	if err == nil {
		t.Errorf("expected an error for a pixel count mismatch")
	}
}

func TestWritePGMHeaderAndBackgroundIsZero(t *testing.T) {
	var buf bytes.Buffer
	depths := []float32{1, 2, 3, 4}
	if err := WritePGM(&buf, 2, 2, depths); err != nil {
		t.Fatalf("WritePGM: %v", err)
	}
	out := buf.Bytes()
	header := "P5\n2 2\n255\n"
	if !strings.HasPrefix(string(out), header) {
		t.Fatalf("unexpected header, got %q", string(out[:len(header)]))
	}
	body := out[len(header):]
	if len(body) != 4 {
		t.Fatalf("expected 4 depth bytes, got %d", len(body))
	}
	if body[3] != 255 {
		t.Errorf("expected the farthest depth to map to 255, got %d", body[3])
	}
}

func TestWriteBMPProducesNonEmptyOutput(t *testing.T) {
	var buf bytes.Buffer
	pixels := []color.Color{color.White, color.Black, color.New(0.2, 0.4, 0.6), color.Black}
	if err := WriteBMP(&buf, 2, 2, pixels); err != nil {
		t.Fatalf("WriteBMP: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("expected non-empty BMP output")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("BM")) {
		t.Errorf("expected a BMP magic header")
	}
}

func TestBOBJRoundTrip(t *testing.T) {
	mesh := &geometry.TriMesh{
		Positions: []rmath.Point3{{X: 0}, {X: 1}, {X: 0, Y: 1}},
		Normals:   []rmath.Normal3{{Y: 1}, {Y: 1}, {Y: 1}},
		UVs:       [][2]float32{{0, 0}, {1, 0}, {0, 1}},
		Indices:   []int{0, 1, 2},
	}

	var buf bytes.Buffer
	if err := WriteBOBJ(&buf, mesh); err != nil {
		t.Fatalf("WriteBOBJ: %v", err)
	}

	got, err := ReadBOBJ(&buf)
	if err != nil {
		t.Fatalf("ReadBOBJ: %v", err)
	}
	if len(got.Positions) != 3 || len(got.Indices) != 3 {
		t.Fatalf("unexpected round-tripped mesh: %+v", got)
	}
	if got.Positions[1].X != 1 {
		t.Errorf("expected positions[1].X == 1, got %v", got.Positions[1].X)
	}
	if got.UVs[2][1] != 1 {
		t.Errorf("expected uvs[2][1] == 1, got %v", got.UVs[2][1])
	}
	for i, idx := range got.Indices {
		if idx != mesh.Indices[i] {
			t.Errorf("index %d: expected %d, got %d", i, mesh.Indices[i], idx)
		}
	}
}

func TestLoadOBJTriangulatesAndDeduplicates(t *testing.T) {
	data := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	f := writeTempFile(t, "quad.obj", data)
	mesh, err := LoadOBJ(f)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(mesh.Positions) != 4 {
		t.Errorf("expected 4 deduplicated vertices, got %d", len(mesh.Positions))
	}
	if len(mesh.Indices) != 6 {
		t.Errorf("expected 2 fan-triangulated faces (6 indices), got %d", len(mesh.Indices))
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := t.TempDir() + "/" + name
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writeTempFile: %v", err)
	}
	return path
}
