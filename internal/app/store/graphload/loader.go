// internal/app/store/graphload/loader.go

// Package graphload materializes the in-memory membership graph from the
// users, organizations, and org_links collections. It runs once at
// startup; afterwards the HTTP layer applies every mutation to Mongo and
// to the graph in tandem.
package graphload

import (
	"context"
	"fmt"

	linkstore "github.com/dalemusser/orghub/internal/app/store/links"
	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	userstore "github.com/dalemusser/orghub/internal/app/store/users"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/dalemusser/orghub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Loader struct {
	users *userstore.Store
	orgs  *organizationstore.Store
	links *linkstore.Store
	log   *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Loader {
	return &Loader{
		users: userstore.New(db),
		orgs:  organizationstore.New(db),
		links: linkstore.New(db),
		log:   logger,
	}
}

// Load builds a fresh graph from the current collection state. Disabled
// entities load with their flag set so projections can skip them.
// Links whose endpoints no longer exist are skipped with a warning; the
// stores delete links alongside entities, so dangling links only appear
// after a crash between the two writes.
func (l *Loader) Load(ctx context.Context) (*graph.Graph, error) {
	g := graph.New()

	users, err := l.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for _, u := range users {
		node, err := userNode(u)
		if err != nil {
			l.log.Warn("skipping malformed user", zap.String("id", u.ID), zap.Error(err))
			continue
		}
		if err := g.AddUser(node); err != nil {
			return nil, fmt.Errorf("register user %s: %w", u.ID, err)
		}
	}

	orgs, err := l.orgs.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load organizations: %w", err)
	}
	for _, o := range orgs {
		node, err := orgNode(o)
		if err != nil {
			l.log.Warn("skipping malformed organization", zap.String("id", o.ID), zap.Error(err))
			continue
		}
		if err := g.AddOrganization(node); err != nil {
			return nil, fmt.Errorf("register organization %s: %w", o.ID, err)
		}
	}

	links, err := l.links.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}
	applied, skipped := 0, 0
	for _, link := range links {
		if err := ApplyLink(g, link); err != nil {
			l.log.Warn("skipping dangling link",
				zap.String("id", link.ID),
				zap.String("source", link.SourceID),
				zap.String("target", link.TargetID),
				zap.Error(err))
			skipped++
			continue
		}
		applied++
	}

	l.log.Info("graph loaded",
		zap.Int("users", len(users)),
		zap.Int("organizations", len(orgs)),
		zap.Int("links", applied),
		zap.Int("skipped_links", skipped))
	return g, nil
}

// ApplyLink replays one stored edge onto the graph. Features reuse this
// after persisting a new link so the two representations cannot drift.
func ApplyLink(g *graph.Graph, link models.OrgLink) error {
	privacy, err := graph.ParsePrivacy(link.Privacy)
	if err != nil {
		return err
	}
	switch link.Kind {
	case models.LinkKindUserOrg:
		_, err := g.LinkUser(
			graph.UserID(link.SourceID),
			graph.UserRelation(link.Relation),
			graph.OrgID(link.TargetID),
			privacy)
		return err
	case models.LinkKindOrgOrg:
		if graph.OrgRelation(link.Relation) != graph.RelChildOf {
			return fmt.Errorf("unknown org relation %q", link.Relation)
		}
		_, err := g.LinkChild(
			graph.OrgID(link.SourceID),
			graph.OrgID(link.TargetID),
			privacy)
		return err
	}
	return fmt.Errorf("unknown link kind %q", link.Kind)
}

func userNode(u models.User) (*graph.User, error) {
	id, err := graph.ParseUserID(u.ID)
	if err != nil {
		return nil, err
	}
	privacy, err := graph.ParsePrivacy(u.Privacy)
	if err != nil {
		return nil, err
	}
	node := graph.NewUser(id, u.FullName, u.Email, privacy)
	node.Disabled = u.Disabled
	return node, nil
}

func orgNode(o models.Organization) (*graph.Organization, error) {
	id, err := graph.ParseOrgID(o.ID)
	if err != nil {
		return nil, err
	}
	privacy, err := graph.ParsePrivacy(o.Privacy)
	if err != nil {
		return nil, err
	}
	node := graph.NewOrganization(id, o.Name, o.Email, privacy)
	node.Disabled = o.Disabled
	return node, nil
}
