// Package tessellate walks a small scene tree and produces triangle meshes
// using a geometry kernel. One mesh is produced per part. The meshes are
// the generated workloads fed to the intersection index: parts that
// overlap yield triangle pairs that cross each other.
package tessellate

import (
	"fmt"

	"github.com/chazu/trisect/pkg/geom"
	"github.com/chazu/trisect/pkg/kernel"
)

// Kind is the type of a scene node.
type Kind int

const (
	Board Kind = iota // box with its minimum corner at the origin
	Dowel             // cylinder along Z centered at the origin
	Place             // transform applied to Children
	Group             // plain container
)

func (k Kind) String() string {
	switch k {
	case Board:
		return "board"
	case Dowel:
		return "dowel"
	case Place:
		return "place"
	case Group:
		return "group"
	default:
		return "unknown"
	}
}

// Node is one element of a scene tree.
type Node struct {
	Kind Kind
	Name string

	Size     geom.Vector3 // Board dimensions
	Length   float64      // Dowel length
	Diameter float64      // Dowel diameter

	Translation geom.Vector3 // Place
	Rotation    geom.Vector3 // Place, Euler degrees

	Children []*Node
}

// transformStack accumulates spatial transforms during traversal.
type transformStack struct {
	translations []geom.Vector3
	rotations    []geom.Vector3
}

func newTransformStack() *transformStack {
	return &transformStack{}
}

func (ts *transformStack) push(translation, rotation geom.Vector3) {
	ts.translations = append(ts.translations, translation)
	ts.rotations = append(ts.rotations, rotation)
}

func (ts *transformStack) pop() {
	if len(ts.translations) > 0 {
		ts.translations = ts.translations[:len(ts.translations)-1]
		ts.rotations = ts.rotations[:len(ts.rotations)-1]
	}
}

func (ts *transformStack) accumulatedTranslation() geom.Vector3 {
	var sum geom.Vector3
	for _, t := range ts.translations {
		sum = sum.Add(t)
	}
	return sum
}

func (ts *transformStack) accumulatedRotation() geom.Vector3 {
	var sum geom.Vector3
	for _, r := range ts.rotations {
		sum = sum.Add(r)
	}
	return sum
}

// Tessellate walks the scene and produces one mesh per Board or Dowel.
func Tessellate(roots []*Node, k kernel.Kernel) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	ts := newTransformStack()
	for i, root := range roots {
		if root == nil {
			continue
		}
		collected, err := walkNode(k, root, ts)
		if err != nil {
			return nil, fmt.Errorf("tessellate: root %d: %w", i, err)
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}

func walkNode(k kernel.Kernel, n *Node, ts *transformStack) ([]*kernel.Mesh, error) {
	switch n.Kind {
	case Board, Dowel:
		return handlePrimitive(k, n, ts)
	case Place:
		ts.push(n.Translation, n.Rotation)
		defer ts.pop()
		return walkChildren(k, n, ts)
	case Group:
		return walkChildren(k, n, ts)
	default:
		return nil, fmt.Errorf("node %q: unknown kind %v", n.Name, n.Kind)
	}
}

func walkChildren(k kernel.Kernel, n *Node, ts *transformStack) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for _, child := range n.Children {
		collected, err := walkNode(k, child, ts)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}

func handlePrimitive(k kernel.Kernel, n *Node, ts *transformStack) ([]*kernel.Mesh, error) {
	var (
		solid kernel.Solid
		err   error
	)
	if n.Kind == Board {
		solid, err = k.Box(n.Size.X, n.Size.Y, n.Size.Z)
	} else {
		solid, err = k.Cylinder(n.Length, n.Diameter/2)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", n.Kind, n.Name, err)
	}

	// Apply accumulated rotation first, then translation.
	if rot := ts.accumulatedRotation(); !rot.IsZero() {
		solid = k.Rotate(solid, rot.X, rot.Y, rot.Z)
	}
	if trans := ts.accumulatedTranslation(); !trans.IsZero() {
		solid = k.Translate(solid, trans.X, trans.Y, trans.Z)
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", n.Kind, n.Name, err)
	}
	mesh.PartName = n.Name
	return []*kernel.Mesh{mesh}, nil
}

// Triangles flattens meshes into one triangle list. owner[i] is the part
// name of tris[i]. Degenerate faces are dropped and counted.
func Triangles(meshes []*kernel.Mesh) (tris []geom.Triangle, owner []string, dropped int) {
	for _, m := range meshes {
		mt, d := m.Triangles()
		dropped += d
		tris = append(tris, mt...)
		for range mt {
			owner = append(owner, m.PartName)
		}
	}
	return tris, owner, dropped
}
