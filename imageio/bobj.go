package imageio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mrigankad/tracer/geometry"
	"github.com/mrigankad/tracer/rmath"
)

// WriteBOBJ serializes mesh to a bit-exact binary layout:
//
//	u32 n_vertices
//	u32 n_triangles
//	float positions[3*n_vertices]
//	float texcoords[3*n_vertices]
//	float normals[3*n_vertices]
//	i32 indices[3*n_triangles]
//
// in host-native byte order (binary.NativeEndian) — this is a
// single-machine cache format, never shipped across machines, so
// there's no wire-portability reason to pay for byte swapping.
func WriteBOBJ(w io.Writer, mesh *geometry.TriMesh) error {
	nv := uint32(len(mesh.Positions))
	nt := uint32(len(mesh.Indices) / 3)

	if err := binary.Write(w, binary.NativeEndian, nv); err != nil {
		return err
	}
	if err := binary.Write(w, binary.NativeEndian, nt); err != nil {
		return err
	}

	positions := make([]float32, 3*nv)
	for i, p := range mesh.Positions {
		positions[3*i], positions[3*i+1], positions[3*i+2] = p.X, p.Y, p.Z
	}
	if err := binary.Write(w, binary.NativeEndian, positions); err != nil {
		return err
	}

	// texcoords are stored 3-wide per spec (u,v,0); UVs are optional.
	texcoords := make([]float32, 3*nv)
	for i, uv := range mesh.UVs {
		if i >= int(nv) {
			break
		}
		texcoords[3*i], texcoords[3*i+1] = uv[0], uv[1]
	}
	if err := binary.Write(w, binary.NativeEndian, texcoords); err != nil {
		return err
	}

	normals := make([]float32, 3*nv)
	for i, n := range mesh.Normals {
		if i >= int(nv) {
			break
		}
		normals[3*i], normals[3*i+1], normals[3*i+2] = n.X, n.Y, n.Z
	}
	if err := binary.Write(w, binary.NativeEndian, normals); err != nil {
		return err
	}

	indices := make([]int32, len(mesh.Indices))
	for i, idx := range mesh.Indices {
		indices[i] = int32(idx)
	}
	return binary.Write(w, binary.NativeEndian, indices)
}

// ReadBOBJ parses the binary layout WriteBOBJ produces back into a
// geometry.TriMesh.
func ReadBOBJ(r io.Reader) (*geometry.TriMesh, error) {
	var nv, nt uint32
	if err := binary.Read(r, binary.NativeEndian, &nv); err != nil {
		return nil, fmt.Errorf("imageio: ReadBOBJ: n_vertices: %w", err)
	}
	if err := binary.Read(r, binary.NativeEndian, &nt); err != nil {
		return nil, fmt.Errorf("imageio: ReadBOBJ: n_triangles: %w", err)
	}

	positions := make([]float32, 3*nv)
	if err := binary.Read(r, binary.NativeEndian, positions); err != nil {
		return nil, fmt.Errorf("imageio: ReadBOBJ: positions: %w", err)
	}
	texcoords := make([]float32, 3*nv)
	if err := binary.Read(r, binary.NativeEndian, texcoords); err != nil {
		return nil, fmt.Errorf("imageio: ReadBOBJ: texcoords: %w", err)
	}
	normals := make([]float32, 3*nv)
	if err := binary.Read(r, binary.NativeEndian, normals); err != nil {
		return nil, fmt.Errorf("imageio: ReadBOBJ: normals: %w", err)
	}
	indices := make([]int32, 3*nt)
	if err := binary.Read(r, binary.NativeEndian, indices); err != nil {
		return nil, fmt.Errorf("imageio: ReadBOBJ: indices: %w", err)
	}

	mesh := &geometry.TriMesh{
		Positions: make([]rmath.Point3, nv),
		Normals:   make([]rmath.Normal3, nv),
		UVs:       make([][2]float32, nv),
		Indices:   make([]int, len(indices)),
	}
	for i := range mesh.Positions {
		mesh.Positions[i] = rmath.Point3{X: positions[3*i], Y: positions[3*i+1], Z: positions[3*i+2]}
		mesh.Normals[i] = rmath.Normal3{X: normals[3*i], Y: normals[3*i+1], Z: normals[3*i+2]}
		mesh.UVs[i] = [2]float32{texcoords[3*i], texcoords[3*i+1]}
	}
	for i, idx := range indices {
		mesh.Indices[i] = int(idx)
	}
	return mesh, nil
}
