// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/orghub/internal/app/system/bus"
	"github.com/dalemusser/orghub/internal/app/system/notify"
	"github.com/dalemusser/orghub/internal/app/system/workers"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the long-lived backends for the app.
//
// WAFFLE hands DBDeps to later hooks by value, so everything that must
// survive from ConnectDB through BuildHandler and Shutdown lives here
// as a pointer set in ConnectDB.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Bus carries notification envelopes between the dispatcher and
	// the delivery workers.
	Bus *bus.Bus

	// Graph is the in-memory membership graph, loaded from Mongo in
	// ConnectDB and kept in sync by the mutation handlers.
	Graph *graph.Graph

	Notify    *notify.Workers
	Retention *workers.Retention
}
