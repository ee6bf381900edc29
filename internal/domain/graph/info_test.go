package graph_test

import (
	"testing"

	"github.com/dalemusser/orghub/internal/domain/graph"
)

// buildChain assembles Root <- Mid <- Leaf and registers the named users.
func buildChain(t *testing.T, users ...string) *graph.Graph {
	t.Helper()
	g := graph.New()
	newOrg(t, g, "root")
	newOrg(t, g, "mid")
	newOrg(t, g, "leaf")
	link(t, g, "mid", "root")
	link(t, g, "leaf", "mid")
	for _, u := range users {
		newUser(t, g, u)
	}
	return g
}

func TestBuildTree_MembershipInheritsDownward(t *testing.T) {
	g := buildChain(t, "alice")
	if _, err := g.LinkUser("alice", graph.RelMember, "root", graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkUser: %v", err)
	}

	info, err := g.BuildTree("root", "alice")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	if !info.YouAreMember {
		t.Error("root: YouAreMember = false, want true")
	}
	if len(info.Children) != 1 {
		t.Fatalf("root children: got %d, want 1", len(info.Children))
	}
	mid := info.Children[0]
	if mid.ID != "mid" || !mid.YouAreMember {
		t.Errorf("mid: ID=%s member=%v, want mid/true", mid.ID, mid.YouAreMember)
	}
	if len(mid.Children) != 1 {
		t.Fatalf("mid children: got %d, want 1", len(mid.Children))
	}
	leaf := mid.Children[0]
	if leaf.ID != "leaf" || !leaf.YouAreMember {
		t.Errorf("leaf: ID=%s member=%v, want leaf/true", leaf.ID, leaf.YouAreMember)
	}

	// Plain membership grants no management capabilities anywhere.
	if info.YouCanAddMembers || leaf.YouCanAddMembers {
		t.Error("member without admin edge must not gain add-members capability")
	}
}

func TestBuildTree_StrangerSeesOnlyPrunedRoot(t *testing.T) {
	g := buildChain(t, "bob")

	info, err := g.BuildTree("root", "bob")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	if info.YouAreMember {
		t.Error("root: YouAreMember = true for stranger, want false")
	}
	if len(info.Children) != 0 {
		t.Errorf("root children: got %d, want 0 (mid and leaf pruned)", len(info.Children))
	}
}

func TestBuildTree_AdminCapabilitiesInherit(t *testing.T) {
	g := buildChain(t, "root-admin")
	if _, err := g.LinkUser("root-admin", graph.RelAdmin, "root", graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkUser: %v", err)
	}

	info, err := g.BuildTree("root", "root-admin")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	for node := info; node != nil; {
		if !node.YouCanAddMembers || !node.YouCanCreateChildOrganizations {
			t.Errorf("%s: capabilities not inherited (add=%v create=%v)",
				node.ID, node.YouCanAddMembers, node.YouCanCreateChildOrganizations)
		}
		if !node.YouAreMember {
			t.Errorf("%s: admin should count as in scope", node.ID)
		}
		if len(node.Children) == 0 {
			break
		}
		node = node.Children[0]
	}
}

func TestBuildTree_MidMembershipKeepsBranchAlive(t *testing.T) {
	g := buildChain(t, "carol")
	if _, err := g.LinkUser("carol", graph.RelMember, "mid", graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkUser: %v", err)
	}

	info, err := g.BuildTree("root", "carol")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	// Root itself is not in scope but is never dropped.
	if info.YouAreMember {
		t.Error("root: YouAreMember = true, want false")
	}
	// Mid survives with its subtree; membership inherits to leaf.
	if len(info.Children) != 1 || info.Children[0].ID != "mid" {
		t.Fatalf("root children: got %v, want [mid]", childIDs(info))
	}
	if len(info.Children[0].Children) != 1 {
		t.Errorf("mid children: got %d, want 1", len(info.Children[0].Children))
	}
}

func TestBuildTree_DiamondProjectsPerPath(t *testing.T) {
	// top has children left and right; both have child bottom.
	g := graph.New()
	for _, id := range []string{"top", "left", "right", "bottom"} {
		newOrg(t, g, id)
	}
	link(t, g, "left", "top")
	link(t, g, "right", "top")
	link(t, g, "bottom", "left")
	link(t, g, "bottom", "right")
	newUser(t, g, "dora")
	if _, err := g.LinkUser("dora", graph.RelMember, "top", graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkUser: %v", err)
	}

	info, err := g.BuildTree("top", "dora")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	// bottom appears once under each parent path.
	count := 0
	for _, branch := range info.Children {
		for _, c := range branch.Children {
			if c.ID == "bottom" {
				count++
			}
		}
	}
	if count != 2 {
		t.Errorf("bottom projected %d times, want once per path (2)", count)
	}
}

func TestBuildTree_CycleTerminates(t *testing.T) {
	g := graph.New()
	newOrg(t, g, "a")
	newOrg(t, g, "b")
	link(t, g, "b", "a")
	link(t, g, "a", "b") // a and b are each other's children
	newUser(t, g, "eve")
	if _, err := g.LinkUser("eve", graph.RelMember, "a", graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkUser: %v", err)
	}

	info, err := g.BuildTree("a", "eve")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if len(info.Children) != 1 || info.Children[0].ID != "b" {
		t.Fatalf("a children: got %v, want [b]", childIDs(info))
	}
	// b must not recurse back into a.
	if len(info.Children[0].Children) != 0 {
		t.Errorf("cycle not cut: b has children %v", childIDs(info.Children[0]))
	}
}

func TestBuildTree_DisabledChildSkipped(t *testing.T) {
	g := buildChain(t, "alice")
	if _, err := g.LinkUser("alice", graph.RelMember, "root", graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkUser: %v", err)
	}
	if err := g.SetOrgAttrs("mid", "", "", graph.PrivacyWorld, true); err != nil {
		t.Fatalf("SetOrgAttrs: %v", err)
	}

	info, err := g.BuildTree("root", "alice")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if len(info.Children) != 0 {
		t.Errorf("disabled child projected: %v", childIDs(info))
	}
}

func TestBuildTree_UnknownRootAndViewer(t *testing.T) {
	g := buildChain(t, "alice")

	if _, err := g.BuildTree("nope", "alice"); err != graph.ErrOrgNotFound {
		t.Errorf("unknown root: got %v, want ErrOrgNotFound", err)
	}
	if _, err := g.BuildTree("root", "nobody"); err != graph.ErrUserNotFound {
		t.Errorf("unknown viewer: got %v, want ErrUserNotFound", err)
	}
}

func TestBuildTree_EmptyIDsPanic(t *testing.T) {
	g := graph.New()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty root id")
		}
	}()
	_, _ = g.BuildTree("", "viewer")
}

func childIDs(info *graph.OrganizationInfo) []graph.OrgID {
	out := make([]graph.OrgID, len(info.Children))
	for i, c := range info.Children {
		out[i] = c.ID
	}
	return out
}
