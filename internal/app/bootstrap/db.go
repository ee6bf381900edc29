// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes the stores rely on.
//
// The unique (user_id, fingerprint) index on notification_channels is
// what makes channel registration dedup work: Register turns the
// duplicate-key error into ErrDuplicateChannel.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	type spec struct {
		collection string
		model      mongo.IndexModel
	}
	specs := []spec{
		{"users", mongo.IndexModel{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email_ci"),
		}},
		{"organizations", mongo.IndexModel{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_name_ci"),
		}},
		{"notification_channels", mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_fingerprint"),
		}},
		{"org_links", mongo.IndexModel{
			Keys:    bson.D{{Key: "source_id", Value: 1}},
			Options: options.Index().SetName("by_source"),
		}},
		{"org_links", mongo.IndexModel{
			Keys:    bson.D{{Key: "target_id", Value: 1}},
			Options: options.Index().SetName("by_target"),
		}},
		{"notifications", mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("feed"),
		}},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.collection).Indexes().CreateOne(ctx, s.model); err != nil {
			return fmt.Errorf("create index on %s: %w", s.collection, err)
		}
	}

	logger.Info("schema ensured", zap.Int("indexes", len(specs)))
	return nil
}
