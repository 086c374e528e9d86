package tessellate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/chazu/trisect/pkg/geom"
	"github.com/samber/lo"
)

// ErrUnknownScene is returned by Scene for names not in Scenes.
var ErrUnknownScene = errors.New("tessellate: unknown scene")

func board(name string, x, y, z float64) *Node {
	return &Node{Kind: Board, Name: name, Size: geom.Vec3(x, y, z)}
}

func place(t geom.Vector3, children ...*Node) *Node {
	return &Node{Kind: Place, Translation: t, Children: children}
}

// Built-in scenes. Each returns a fresh tree.
var scenes = map[string]func() []*Node{
	// One board: only neighbouring triangles of its own surface touch.
	"board": func() []*Node {
		return []*Node{board("board", 120, 60, 20)}
	},
	// Two boards with a gap: no triangle of one meets the other.
	"apart": func() []*Node {
		return []*Node{
			board("left", 60, 60, 20),
			place(geom.Vec3(100, 0, 0), board("right", 60, 60, 20)),
		}
	},
	// A dowel driven through the middle of a board.
	"dowel": func() []*Node {
		return []*Node{
			board("board", 60, 60, 20),
			place(geom.Vec3(30, 30, 10), &Node{Kind: Dowel, Name: "dowel", Length: 60, Diameter: 16}),
		}
	},
	// A shelf whose ends are sunk into two sides.
	"shelf": func() []*Node {
		return []*Node{
			{Kind: Group, Name: "carcass", Children: []*Node{
				board("left", 20, 100, 200),
				place(geom.Vec3(180, 0, 0), board("right", 20, 100, 200)),
			}},
			place(geom.Vec3(10, 0, 90), board("shelf", 180, 100, 20)),
		}
	},
	// A rotated board crossing a flat one.
	"cross": func() []*Node {
		return []*Node{
			board("base", 100, 100, 20),
			{
				Kind:        Place,
				Translation: geom.Vec3(50, 0, -30),
				Rotation:    geom.Vec3(0, 30, 0),
				Children:    []*Node{board("brace", 20, 100, 80)},
			},
		}
	},
}

// Scenes returns the built-in scene names, sorted.
func Scenes() []string {
	names := lo.Keys(scenes)
	slices.Sort(names)
	return names
}

// Scene returns a fresh copy of the named scene.
func Scene(name string) ([]*Node, error) {
	fn, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}
	return fn(), nil
}
