package testutil

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// SetupTestDB connects to the Mongo instance named by ORGHUB_TEST_MONGO_URI
// (default mongodb://localhost:27017) and returns a throwaway database that
// is dropped when the test finishes. Tests are skipped when no Mongo is
// reachable, so the rest of the suite runs anywhere.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("ORGHUB_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo not available at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo not reachable at %s: %v", uri, err)
	}

	db := client.Database("orghub_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user and returns it with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         uuid.NewString(),
		FullName:   name,
		FullNameCI: text.Fold(name),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       role,
		Privacy:    string(graph.PrivacyWorld),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("insert test user: %v", err)
	}
	return u
}

// CreateOrganization inserts a test organization with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        uuid.NewString(),
		Name:      name,
		NameCI:    text.Fold(name),
		Privacy:   string(graph.PrivacyWorld),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("insert test organization: %v", err)
	}
	return org
}

// CreateLink inserts one org_links document.
func (f *Fixtures) CreateLink(ctx context.Context, kind, relation, sourceID, targetID string) models.OrgLink {
	f.t.Helper()

	link := models.OrgLink{
		ID:        uuid.NewString(),
		Kind:      kind,
		Relation:  relation,
		SourceID:  sourceID,
		TargetID:  targetID,
		Privacy:   string(graph.PrivacyWorld),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("org_links").InsertOne(ctx, link); err != nil {
		f.t.Fatalf("insert test link: %v", err)
	}
	return link
}

// NewGraph builds an in-memory graph with the given users and orgs
// already registered, for handler tests that bypass Mongo entirely.
func NewGraph(t *testing.T, userIDs, orgIDs []string) *graph.Graph {
	t.Helper()

	g := graph.New()
	for _, id := range userIDs {
		u := graph.NewUser(graph.UserID(id), "User "+id, id+"@test.com", graph.PrivacyWorld)
		if err := g.AddUser(u); err != nil {
			t.Fatalf("add user %s: %v", id, err)
		}
	}
	for _, id := range orgIDs {
		o := graph.NewOrganization(graph.OrgID(id), "Org "+id, "", graph.PrivacyWorld)
		if err := g.AddOrganization(o); err != nil {
			t.Fatalf("add org %s: %v", id, err)
		}
	}
	return g
}
