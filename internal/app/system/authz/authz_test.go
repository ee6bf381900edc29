package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/authz"
	"github.com/dalemusser/orghub/internal/domain/graph"
)

func TestViewer(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, ok := authz.Viewer(r); ok {
		t.Error("Viewer on anonymous request: got ok, want false")
	}

	r = auth.WithTestUser(r, &auth.SessionUser{ID: "u1", Role: authz.RoleUser})
	id, ok := authz.Viewer(r)
	if !ok || id != "u1" {
		t.Errorf("Viewer: got (%q, %v), want (u1, true)", id, ok)
	}
}

func TestCanManageOrg(t *testing.T) {
	g := graph.New()
	root := graph.NewOrganization("root", "Root", "", graph.PrivacyWorld)
	leaf := graph.NewOrganization("leaf", "Leaf", "", graph.PrivacyWorld)
	u := graph.NewUser("carol", "Carol", "carol@example.com", graph.PrivacyWorld)
	for _, err := range []error{g.AddOrganization(root), g.AddOrganization(leaf), g.AddUser(u)} {
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	if _, err := g.LinkChild("leaf", "root", graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkChild: %v", err)
	}
	if _, err := g.LinkUser("carol", graph.RelAdmin, "root", graph.PrivacyWorld); err != nil {
		t.Fatalf("LinkUser: %v", err)
	}

	// Service admin manages anything.
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: "someone", Role: authz.RoleAdmin})
	if !authz.CanManageOrg(r, g, "leaf") {
		t.Error("service admin: got false, want true")
	}

	// Org admin of an ancestor manages the descendant.
	r = auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: "carol", Role: authz.RoleUser})
	if !authz.CanManageOrg(r, g, "leaf") {
		t.Error("ancestor org admin: got false, want true")
	}

	// A plain user with no edges does not.
	r = auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: "nobody", Role: authz.RoleUser})
	if authz.CanManageOrg(r, g, "leaf") {
		t.Error("stranger: got true, want false")
	}
}
