// Package bus owns the NATS connection the notification pipeline rides
// on. In the default single-binary deployment it runs an embedded
// nats-server; pointing nats_url at an external cluster skips the
// embedded server entirely.
package bus

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Config selects between an external NATS URL and an embedded server.
type Config struct {
	URL      string // external server URL; ignored when Embedded is set
	Embedded bool
	Port     int // embedded server port; -1 binds a random free port
}

// Bus bundles the client connection with the optional embedded server.
type Bus struct {
	conn   *nats.Conn
	server *server.Server
	log    *zap.Logger
}

const readyTimeout = 5 * time.Second

// Connect starts the embedded server if requested and dials it.
func Connect(cfg Config, logger *zap.Logger) (*Bus, error) {
	b := &Bus{log: logger}

	url := cfg.URL
	if cfg.Embedded {
		srv, err := server.NewServer(&server.Options{
			Port:       cfg.Port,
			NoLog:      true,
			NoSigs:     true,
			MaxPayload: 1 << 20,
		})
		if err != nil {
			return nil, fmt.Errorf("embedded nats: %w", err)
		}
		go srv.Start()
		if !srv.ReadyForConnections(readyTimeout) {
			srv.Shutdown()
			return nil, fmt.Errorf("embedded nats not ready after %s", readyTimeout)
		}
		b.server = srv
		url = srv.ClientURL()
		logger.Info("embedded nats server started", zap.String("url", url))
	}

	conn, err := nats.Connect(url,
		nats.Name("orghub"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		if b.server != nil {
			b.server.Shutdown()
		}
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	b.conn = conn
	return b, nil
}

// Conn exposes the client connection for publishers and subscribers.
func (b *Bus) Conn() *nats.Conn {
	return b.conn
}

// Close drains the connection and stops the embedded server if one is
// running.
func (b *Bus) Close() {
	if b.conn != nil {
		if err := b.conn.Drain(); err != nil {
			b.log.Warn("nats drain failed", zap.Error(err))
		}
	}
	if b.server != nil {
		b.server.Shutdown()
		b.server.WaitForShutdown()
	}
}
