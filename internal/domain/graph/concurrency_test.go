package graph_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dalemusser/orghub/internal/domain/graph"
)

func TestLookupReturnsDetachedCopy(t *testing.T) {
	g := graph.New()
	newOrg(t, g, "parent")
	newOrg(t, g, "kid")
	newUser(t, g, "alice")

	before, _ := g.Organization("parent")
	link(t, g, "kid", "parent")
	if got := before.Children(); len(got) != 0 {
		t.Errorf("earlier lookup gained children: %v", got)
	}
	after, _ := g.Organization("parent")
	if got := after.Children(); len(got) != 1 || got[0] != "kid" {
		t.Errorf("fresh lookup children = %v, want [kid]", got)
	}

	u, _ := g.User("alice")
	if _, err := g.LinkUser("alice", graph.RelMember, "parent", graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkUser: %v", err)
	}
	if u.HasEdge(graph.RelMember, "parent") {
		t.Error("earlier lookup gained a member edge")
	}
	u.Name = "scribbled"
	fresh, _ := g.User("alice")
	if fresh.Name == "scribbled" {
		t.Error("writing through a lookup result reached the registry")
	}
}

// Readers hammer lookups, closures, and member listings while one
// writer links and renames. The assertions are thin; the point is that
// the race detector stays quiet.
func TestConcurrentReadsAndWrites(t *testing.T) {
	g := graph.New()
	newOrg(t, g, "root")
	newUser(t, g, "alice")
	const n = 100
	for i := 0; i < n; i++ {
		newOrg(t, g, fmt.Sprintf("child-%d", i))
	}
	link(t, g, "child-0", "root")

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 1; i < n; i++ {
			child := graph.OrgID(fmt.Sprintf("child-%d", i))
			if _, err := g.LinkChild(child, "root", graph.PrivacyWorld); err != nil {
				t.Errorf("LinkChild(%s): %v", child, err)
			}
			if _, err := g.LinkUser("alice", graph.RelMember, child, graph.PrivacyWorld); err != nil {
				t.Errorf("LinkUser(%s): %v", child, err)
			}
			if err := g.SetOrgAttrs("root", fmt.Sprintf("Root %d", i), "", graph.PrivacyWorld, false); err != nil {
				t.Errorf("SetOrgAttrs: %v", err)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if node, ok := g.Organization("root"); ok {
				for _, id := range node.Children() {
					_ = id
				}
				_ = node.Name
			}
			for _, p := range g.AllParents("child-0", nil) {
				_ = p.Name
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for _, m := range g.Members("root") {
				_ = m.Email
			}
			if u, ok := g.User("alice"); ok {
				u.HasEdge(graph.RelMember, "root")
			}
			if _, err := g.BuildTree("root", "alice"); err != nil {
				t.Errorf("BuildTree: %v", err)
			}
		}
	}()
	wg.Wait()

	root, _ := g.Organization("root")
	if got := len(root.Children()); got != n {
		t.Errorf("children after writes = %d, want %d", got, n)
	}
}
