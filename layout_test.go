package arbor

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func orgEntities() []Entity {
	return []Entity{
		{ID: "1", Name: "Parent"},
		{ID: "2", Name: "Child 1", ParentID: "1"},
		{ID: "3", Name: "Child 2", ParentID: "1"},
		{ID: "4", Name: "Child 3", ParentID: "1"},
	}
}

func TestComputeLayoutScenario(t *testing.T) {
	nodes, edges := ComputeLayout(orgEntities(), 1000)

	if len(nodes) != 4 {
		t.Fatalf("len(nodes) = %d, want 4", len(nodes))
	}
	if len(edges) != 3 {
		t.Fatalf("len(edges) = %d, want 3", len(edges))
	}

	root := nodes[0]
	assertNear(t, "root.X", root.X, 420)
	assertNear(t, "root.Y", root.Y, 100)
	assertNear(t, "root.CenterX", root.CenterX(), 500)

	wantX := []float64{280, 500, 720}
	for i, want := range wantX {
		child := nodes[i+1]
		assertNear(t, fmt.Sprintf("child[%d].X", i), child.X, want)
		assertNear(t, fmt.Sprintf("child[%d].Y", i), child.Y, 220)
		if child.Width != NodeWidth || child.Height != NodeHeight {
			t.Errorf("child[%d] size = %vx%v, want %vx%v",
				i, child.Width, child.Height, NodeWidth, NodeHeight)
		}
	}
}

func TestComputeLayoutNoRoot(t *testing.T) {
	entities := []Entity{
		{ID: "2", Name: "Orphan A", ParentID: "1"},
		{ID: "3", Name: "Orphan B", ParentID: "1"},
	}
	nodes, edges := ComputeLayout(entities, 1000)
	if len(nodes) != 0 || len(edges) != 0 {
		t.Errorf("layout without a root = %d nodes, %d edges, want empty", len(nodes), len(edges))
	}
}

func TestComputeLayoutEmptyInput(t *testing.T) {
	nodes, edges := ComputeLayout(nil, 1000)
	if len(nodes) != 0 || len(edges) != 0 {
		t.Errorf("layout of nil input = %d nodes, %d edges, want empty", len(nodes), len(edges))
	}
}

func TestComputeLayoutRootOnly(t *testing.T) {
	nodes, edges := ComputeLayout([]Entity{{ID: "1", Name: "Solo"}}, 640)
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	if len(edges) != 0 {
		t.Fatalf("len(edges) = %d, want 0", len(edges))
	}
	assertNear(t, "root.X", nodes[0].X, 640/2.0-NodeWidth/2)
	assertNear(t, "root.Y", nodes[0].Y, RootY)
}

func TestComputeLayoutChildOrder(t *testing.T) {
	// Insertion order determines left-to-right placement.
	entities := []Entity{
		{ID: "r", Name: "Root"},
		{ID: "b", Name: "B", ParentID: "r"},
		{ID: "a", Name: "A", ParentID: "r"},
	}
	nodes, _ := ComputeLayout(entities, 1000)
	if nodes[1].Entity.ID != "b" || nodes[2].Entity.ID != "a" {
		t.Errorf("child order = %q, %q, want b, a", nodes[1].Entity.ID, nodes[2].Entity.ID)
	}
	if nodes[1].X >= nodes[2].X {
		t.Errorf("first child X %v not left of second child X %v", nodes[1].X, nodes[2].X)
	}
}

func TestComputeLayoutIgnoresForeignParents(t *testing.T) {
	// Entities referencing a non-root parent are not laid out; the current
	// algorithm handles exactly one level.
	entities := []Entity{
		{ID: "r", Name: "Root"},
		{ID: "c", Name: "Child", ParentID: "r"},
		{ID: "g", Name: "Grandchild", ParentID: "c"},
	}
	nodes, edges := ComputeLayout(entities, 1000)
	if len(nodes) != 2 || len(edges) != 1 {
		t.Errorf("layout = %d nodes, %d edges, want 2 and 1", len(nodes), len(edges))
	}
}

func TestComputeLayoutProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		childCount := rapid.IntRange(0, 25).Draw(t, "childCount")
		surfaceWidth := float64(rapid.IntRange(100, 4000).Draw(t, "surfaceWidth"))

		entities := []Entity{{ID: "root", Name: "Root"}}
		for i := 0; i < childCount; i++ {
			entities = append(entities, Entity{
				ID:       fmt.Sprintf("c%d", i),
				Name:     fmt.Sprintf("Child %d", i),
				ParentID: "root",
			})
		}

		nodes, edges := ComputeLayout(entities, surfaceWidth)
		if len(nodes) != childCount+1 {
			t.Fatalf("len(nodes) = %d, want %d", len(nodes), childCount+1)
		}
		if len(edges) != childCount {
			t.Fatalf("len(edges) = %d, want %d", len(edges), childCount)
		}

		root := nodes[0]
		rootCenterX := root.CenterX()

		for i := 0; i < childCount; i++ {
			child := nodes[i+1]

			// Consecutive children are separated by exactly ChildGap.
			if i > 0 {
				prev := nodes[i]
				if diff := child.X - prev.X; diff != ChildGap {
					t.Fatalf("child[%d].X - child[%d].X = %v, want %v", i, i-1, diff, ChildGap)
				}
			}

			// X positions are symmetric around the root's center.
			mirror := nodes[childCount-i]
			if sum := child.X + mirror.X; sum != 2*rootCenterX {
				t.Fatalf("child[%d].X + mirror.X = %v, want %v", i, sum, 2*rootCenterX)
			}

			// Each edge runs root bottom-center → child top-center.
			e := edges[i]
			if e.X1 != rootCenterX || e.Y1 != root.Y+root.Height {
				t.Fatalf("edge[%d] start = (%v,%v), want (%v,%v)",
					i, e.X1, e.Y1, rootCenterX, root.Y+root.Height)
			}
			if e.X2 != child.CenterX() || e.Y2 != child.Y {
				t.Fatalf("edge[%d] end = (%v,%v), want (%v,%v)",
					i, e.X2, e.Y2, child.CenterX(), child.Y)
			}
		}
	})
}

func TestComputeLayoutDeterministic(t *testing.T) {
	a1, e1 := ComputeLayout(orgEntities(), 1234)
	a2, e2 := ComputeLayout(orgEntities(), 1234)
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Errorf("nodes[%d] differs between identical calls: %+v vs %+v", i, a1[i], a2[i])
		}
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Errorf("edges[%d] differs between identical calls: %+v vs %+v", i, e1[i], e2[i])
		}
	}
}
