package asset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadOBJ reads a Wavefront OBJ file. Only geometry is read: v, vt, vn and f
// records; materials and groups are ignored.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %s: %w", path, err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse obj %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

type objCorner struct{ v, vt, vn int }

// ParseOBJ parses OBJ text. Polygons are fan-triangulated, negative indices
// count from the end, and vertices sharing the same v/vt/vn triple are
// merged. Missing normals are smoothed from face normals; missing UVs are
// zero.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		tris      [][3]objCorner
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if fields[0] == "v" {
				positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
			} else {
				normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
			}
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			corners := make([]objCorner, 0, len(fields)-1)
			for _, g := range fields[1:] {
				c, err := parseCorner(g, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				corners = append(corners, c)
			}
			for i := 1; i+1 < len(corners); i++ {
				tris = append(tris, [3]objCorner{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	smooth := len(normals) == 0
	if smooth {
		normals = make([]mgl32.Vec3, len(positions))
		for _, t := range tris {
			p0, p1, p2 := positions[t[0].v], positions[t[1].v], positions[t[2].v]
			n := p1.Sub(p0).Cross(p2.Sub(p0))
			for _, c := range t {
				normals[c.v] = normals[c.v].Add(n)
			}
		}
		for i, n := range normals {
			if n.Len() > 0 {
				normals[i] = n.Normalize()
			}
		}
	}

	m := &Mesh{Kind: MeshOBJ}
	seen := make(map[objCorner]uint32, len(positions))
	for _, t := range tris {
		for _, c := range t {
			if smooth {
				c.vn = c.v
			}
			idx, ok := seen[c]
			if !ok {
				var uv mgl32.Vec2
				if c.vt >= 0 {
					uv = uvs[c.vt]
				}
				var n mgl32.Vec3
				if c.vn >= 0 {
					n = normals[c.vn]
				}
				idx = uint32(len(m.Positions))
				m.addVertex(positions[c.v], n, uv)
				seen[c] = idx
			}
			m.Indices = append(m.Indices, idx)
		}
	}
	return m, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn into zero-based indices,
// -1 meaning absent.
func parseCorner(group string, nv, nvt, nvn int) (objCorner, error) {
	parts := strings.Split(group, "/")
	c := objCorner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], nv); err != nil {
		return c, err
	}
	if c.v < 0 {
		return c, fmt.Errorf("face %q has no position index", group)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], nvt); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], nvn); err != nil {
			return c, err
		}
	}
	return c, nil
}

func resolveIndex(s string, count int) (int, error) {
	if s == "" {
		return -1, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("bad index %q: %w", s, err)
	}
	if i < 0 {
		i = count + i
	} else {
		i--
	}
	if i < 0 || i >= count {
		return -1, fmt.Errorf("index %s out of range (%d elements)", s, count)
	}
	return i, nil
}
