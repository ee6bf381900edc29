package graph_test

import (
	"testing"

	"github.com/dalemusser/orghub/internal/domain/graph"
)

// link is a shorthand for child --is_child_of--> parent.
func link(t *testing.T, g *graph.Graph, child, parent graph.OrgID) {
	t.Helper()
	if _, err := g.LinkChild(child, parent, graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkChild(%s, %s): %v", child, parent, err)
	}
}

func parentIDs(orgs []*graph.Organization) []graph.OrgID {
	out := make([]graph.OrgID, len(orgs))
	for i, o := range orgs {
		out[i] = o.ID
	}
	return out
}

func TestAllParents_Disconnected(t *testing.T) {
	g := graph.New()
	newOrg(t, g, "lonely")

	if got := g.AllParents("lonely", nil); len(got) != 0 {
		t.Errorf("AllParents: got %v, want empty", parentIDs(got))
	}
}

func TestAllParents_UnknownStart(t *testing.T) {
	g := graph.New()
	if got := g.AllParents("missing", nil); got != nil {
		t.Errorf("AllParents on unknown org: got %v, want nil", parentIDs(got))
	}
}

func TestAllParents_Chain(t *testing.T) {
	g := graph.New()
	newOrg(t, g, "leaf")
	newOrg(t, g, "mid")
	newOrg(t, g, "root")
	link(t, g, "leaf", "mid")
	link(t, g, "mid", "root")

	got := parentIDs(g.AllParents("leaf", nil))
	if len(got) != 2 || got[0] != "mid" || got[1] != "root" {
		t.Errorf("AllParents: got %v, want [mid root]", got)
	}
}

func TestAllParents_SelfCycle(t *testing.T) {
	g := graph.New()
	newOrg(t, g, "ouroboros")
	link(t, g, "ouroboros", "ouroboros")

	got := parentIDs(g.AllParents("ouroboros", nil))
	if len(got) != 1 || got[0] != "ouroboros" {
		t.Errorf("AllParents on self-cycle: got %v, want [ouroboros]", got)
	}
}

func TestAllParents_LongCycle(t *testing.T) {
	g := graph.New()
	newOrg(t, g, "a")
	newOrg(t, g, "b")
	newOrg(t, g, "c")
	link(t, g, "a", "b")
	link(t, g, "b", "c")
	link(t, g, "c", "a")

	got := parentIDs(g.AllParents("a", nil))
	if len(got) != 3 {
		t.Fatalf("AllParents on cycle: got %v, want 3 distinct nodes", got)
	}
	seen := map[graph.OrgID]bool{}
	for _, id := range got {
		if seen[id] {
			t.Errorf("duplicate %s in closure", id)
		}
		seen[id] = true
	}
}

func TestAllParents_DiamondAppearsOnce(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"a", "b", "c", "d"} {
		newOrg(t, g, id)
	}
	link(t, g, "a", "b")
	link(t, g, "a", "c")
	link(t, g, "b", "d")
	link(t, g, "c", "d")

	got := parentIDs(g.AllParents("a", nil))
	count := 0
	for _, id := range got {
		if id == "d" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("diamond top appears %d times in %v, want exactly once", count, got)
	}
	if len(got) != 3 {
		t.Errorf("AllParents: got %v, want [b d c] in some order", got)
	}
}

func TestAllParents_Filter(t *testing.T) {
	g := graph.New()
	newOrg(t, g, "leaf")
	newOrg(t, g, "mid")
	root := newOrg(t, g, "root")
	root.Disabled = true
	link(t, g, "leaf", "mid")
	link(t, g, "mid", "root")

	enabled := func(o *graph.Organization) bool { return !o.Disabled }
	got := parentIDs(g.AllParents("leaf", enabled))
	if len(got) != 1 || got[0] != "mid" {
		t.Errorf("filtered AllParents: got %v, want [mid]", got)
	}
}

func TestAllParents_DanglingEdgeSkipped(t *testing.T) {
	g := graph.New()
	leaf := newOrg(t, g, "leaf")
	leaf.AddOutEdge(graph.NewOrgEdge("leaf", graph.RelChildOf, "unregistered", graph.PrivacyWorld))

	if got := g.AllParents("leaf", nil); len(got) != 0 {
		t.Errorf("AllParents with dangling edge: got %v, want empty", parentIDs(got))
	}
}
