package validator

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/levelforge/internal/level"
)

// supportGraph maps each structural group to the groups it rests on.
// Group A rests on group B when a tile of A sits directly above a
// load-bearing tile of B.
type supportGraph struct {
	groups []level.GroupID
	deps   map[level.GroupID][]level.GroupID
}

func buildSupportGraph(l *level.Layout) supportGraph {
	seen := mapset.New[level.GroupID]()
	edges := make(map[level.GroupID]mapset.Set[level.GroupID])
	g := supportGraph{deps: make(map[level.GroupID][]level.GroupID)}

	for _, idx := range l.DestructibleIndices() {
		if l.Tiles[idx] != level.CollisionDestructible {
			continue
		}
		d := l.Destructibles[idx]
		if !seen.Has(d.Group) {
			seen.Put(d.Group)
			g.groups = append(g.groups, d.Group)
		}

		below := l.Point(idx).Below()
		bd, ok := l.DestructibleAt(below.X, below.Y)
		if !ok || !bd.LoadBearing || bd.Group == d.Group {
			continue
		}
		set, ok := edges[d.Group]
		if !ok {
			set = mapset.New[level.GroupID]()
			edges[d.Group] = set
		}
		if !set.Has(bd.Group) {
			set.Put(bd.Group)
			g.deps[d.Group] = append(g.deps[d.Group], bd.Group)
		}
	}

	slices.Sort(g.groups)
	for k := range g.deps {
		slices.Sort(g.deps[k])
	}
	return g
}

// depths computes the cascade depth of every group: zero for a group that
// rests on nothing, otherwise one more than its deepest dependency. A
// group still on the visiting path counts as zero, so cycles terminate.
func (g supportGraph) depths() map[level.GroupID]int {
	memo := make(map[level.GroupID]int, len(g.groups))
	visiting := mapset.New[level.GroupID]()

	type frame struct {
		group level.GroupID
		next  int
		depth int
	}

	for _, root := range g.groups {
		if _, done := memo[root]; done {
			continue
		}
		visiting.Put(root)
		stack := []frame{{group: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := g.deps[top.group]
			if top.next < len(deps) {
				dep := deps[top.next]
				top.next++
				if d, done := memo[dep]; done {
					top.depth = max(top.depth, d+1)
					continue
				}
				if visiting.Has(dep) {
					top.depth = max(top.depth, 1)
					continue
				}
				visiting.Put(dep)
				stack = append(stack, frame{group: dep})
				continue
			}

			memo[top.group] = top.depth
			visiting.Remove(top.group)
			d := top.depth
			stack = stack[:len(stack)-1]
			if n := len(stack); n > 0 {
				stack[n-1].depth = max(stack[n-1].depth, d+1)
			}
		}
	}
	return memo
}

// maxCascadeDepth returns the deepest cascade of any structural group.
func maxCascadeDepth(l *level.Layout) int {
	deepest := 0
	for _, d := range buildSupportGraph(l).depths() {
		deepest = max(deepest, d)
	}
	return deepest
}
