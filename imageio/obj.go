package imageio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/rmath"
)

// objFaceVertex is one "v/vt/vn" face-vertex token with 0-based indices,
// -1 meaning absent.
type objFaceVertex struct{ v, vt, vn int }

// objTriFace is one already-triangulated face.
type objTriFace struct{ a, b, c objFaceVertex }

// LoadOBJ parses a Wavefront .obj file into a single deduplicated
// geometry.TriMesh, fan-triangulating polygons and area-weighting
// normals when the file has none. Multi-object and MTL material support
// is dropped: the mesh cache this feeds is a single untextured mesh with
// no group or material data to carry.
func LoadOBJ(path string) (*geometry.TriMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open obj %q: %w", path, err)
	}
	defer f.Close()

	var positions []rmath.Point3
	var normals []rmath.Normal3
	var uvs [][2]float32
	var faces []objTriFace

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 32)
			y, _ := strconv.ParseFloat(fields[2], 32)
			z, _ := strconv.ParseFloat(fields[3], 32)
			positions = append(positions, rmath.Point3{X: float32(x), Y: float32(y), Z: float32(z)})

		case "vn":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 32)
			y, _ := strconv.ParseFloat(fields[2], 32)
			z, _ := strconv.ParseFloat(fields[3], 32)
			normals = append(normals, rmath.Normal3{X: float32(x), Y: float32(y), Z: float32(z)})

		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 32)
			v, _ := strconv.ParseFloat(fields[2], 32)
			uvs = append(uvs, [2]float32{float32(u), float32(v)})

		case "f":
			if len(fields) < 4 {
				continue
			}
			var fverts []objFaceVertex
			for _, tok := range fields[1:] {
				fverts = append(fverts, parseFaceVertex(tok))
			}
			for i := 1; i+1 < len(fverts); i++ {
				faces = append(faces, objTriFace{fverts[0], fverts[i], fverts[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("imageio: scan obj: %w", err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("imageio: no geometry found in %q", path)
	}

	return buildMeshFromOBJ(faces, positions, normals, uvs), nil
}

func parseFaceVertex(tok string) objFaceVertex {
	parseIdx := func(s string) int {
		if s == "" {
			return -1
		}
		n, _ := strconv.Atoi(s)
		if n > 0 {
			return n - 1
		}
		return n
	}
	parts := strings.Split(tok, "/")
	res := objFaceVertex{v: -1, vt: -1, vn: -1}
	if len(parts) > 0 {
		res.v = parseIdx(parts[0])
	}
	if len(parts) > 1 {
		res.vt = parseIdx(parts[1])
	}
	if len(parts) > 2 {
		res.vn = parseIdx(parts[2])
	}
	return res
}

func buildMeshFromOBJ(faces []objTriFace, positions []rmath.Point3, normals []rmath.Normal3, uvs [][2]float32) *geometry.TriMesh {
	type key struct{ v, vt, vn int }
	vertMap := map[key]int{}
	mesh := &geometry.TriMesh{}

	safePos := func(i int) rmath.Point3 {
		if i >= 0 && i < len(positions) {
			return positions[i]
		}
		return rmath.Point3{}
	}
	safeNorm := func(i int) rmath.Normal3 {
		if i >= 0 && i < len(normals) {
			return normals[i]
		}
		return rmath.Normal3{Y: 1}
	}
	safeUV := func(i int) [2]float32 {
		if i >= 0 && i < len(uvs) {
			return uvs[i]
		}
		return [2]float32{}
	}

	emit := func(fv objFaceVertex) int {
		k := key{fv.v, fv.vt, fv.vn}
		if idx, ok := vertMap[k]; ok {
			return idx
		}
		idx := len(mesh.Positions)
		mesh.Positions = append(mesh.Positions, safePos(fv.v))
		mesh.Normals = append(mesh.Normals, safeNorm(fv.vn))
		mesh.UVs = append(mesh.UVs, safeUV(fv.vt))
		vertMap[k] = idx
		return idx
	}

	hasNormals := len(normals) > 0
	for _, f := range faces {
		mesh.Indices = append(mesh.Indices, emit(f.a), emit(f.b), emit(f.c))
	}
	if !hasNormals {
		generateFlatNormals(mesh)
	}
	return mesh
}

// generateFlatNormals area-weights face normals into each shared vertex.
func generateFlatNormals(mesh *geometry.TriMesh) {
	accum := make([]rmath.Vector, len(mesh.Positions))
	counts := make([]int, len(mesh.Positions))

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		i0, i1, i2 := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		v0, v1, v2 := mesh.Positions[i0], mesh.Positions[i1], mesh.Positions[i2]
		n := v1.SubPoint(v0).Cross(v2.SubPoint(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
		counts[i0]++
		counts[i1]++
		counts[i2]++
	}
	for i := range mesh.Positions {
		if counts[i] > 0 {
			u := accum[i].Normalize()
			mesh.Normals[i] = rmath.Normal3{X: u.X, Y: u.Y, Z: u.Z}
		}
	}
}
