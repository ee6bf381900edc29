package graphload

import (
	"testing"

	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/orghub/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestLoadRebuildsGraph(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := t.Context()

	admin := f.CreateUser(ctx, "Admin", "admin@example.com", "user")
	member := f.CreateUser(ctx, "Member", "member@example.com", "user")
	parent := f.CreateOrganization(ctx, "Parent Org")
	child := f.CreateOrganization(ctx, "Child Org")

	f.CreateLink(ctx, models.LinkKindUserOrg, string(graph.RelAdmin), admin.ID, parent.ID)
	f.CreateLink(ctx, models.LinkKindUserOrg, string(graph.RelMember), member.ID, child.ID)
	f.CreateLink(ctx, models.LinkKindOrgOrg, string(graph.RelChildOf), child.ID, parent.ID)

	g, err := New(db, zap.NewNop()).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	childNode, ok := g.Organization(graph.OrgID(child.ID))
	if !ok {
		t.Fatal("child organization missing from graph")
	}
	parents := childNode.Parents()
	if len(parents) != 1 || parents[0] != graph.OrgID(parent.ID) {
		t.Errorf("child parents = %v, want [%s]", parents, parent.ID)
	}

	memberNode, ok := g.User(graph.UserID(member.ID))
	if !ok {
		t.Fatal("member missing from graph")
	}
	if !memberNode.HasEdge(graph.RelMember, graph.OrgID(child.ID)) {
		t.Error("member edge not rebuilt")
	}

	adminNode, _ := g.User(graph.UserID(admin.ID))
	if !adminNode.HasEdge(graph.RelAdmin, graph.OrgID(parent.ID)) {
		t.Error("admin edge not rebuilt")
	}
}

func TestLoadSkipsDanglingLinks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := t.Context()

	u := f.CreateUser(ctx, "Orphaned", "orphan@example.com", "user")
	org := f.CreateOrganization(ctx, "Real Org")

	f.CreateLink(ctx, models.LinkKindUserOrg, string(graph.RelMember), u.ID, org.ID)
	// Edge to an organization that no longer exists.
	f.CreateLink(ctx, models.LinkKindUserOrg, string(graph.RelMember), u.ID, uuid.NewString())

	g, err := New(db, zap.NewNop()).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	node, ok := g.User(graph.UserID(u.ID))
	if !ok {
		t.Fatal("user missing from graph")
	}
	if got := len(node.OrgEdges()); got != 1 {
		t.Errorf("user has %d edges, want 1 (dangling link skipped)", got)
	}
}

func TestLoadCarriesDisabledFlag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := t.Context()

	org := f.CreateOrganization(ctx, "Shut Down")
	if _, err := db.Collection("organizations").UpdateByID(ctx, org.ID,
		bson.M{"$set": bson.M{"disabled": true}}); err != nil {
		t.Fatalf("flag organization: %v", err)
	}

	g, err := New(db, zap.NewNop()).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	node, ok := g.Organization(graph.OrgID(org.ID))
	if !ok {
		t.Fatal("organization missing from graph")
	}
	if !node.Disabled {
		t.Error("disabled flag lost on load")
	}
}
