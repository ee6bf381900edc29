// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// The graph itself is already loaded (ConnectDB owns everything that
// outlives a single hook), so this is where the background work starts:
// the delivery workers begin draining the bus and the retention sweep
// begins purging old read notifications.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := deps.Notify.Start(); err != nil {
		return err
	}
	deps.Retention.Start()

	logger.Info("orghub ready",
		zap.Int("graph_users", len(deps.Graph.Users())),
		zap.Int("graph_organizations", len(deps.Graph.Organizations())))
	return nil
}
