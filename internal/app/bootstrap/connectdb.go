// internal/app/bootstrap/connectdb.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/orghub/internal/app/store/graphload"
	notificationstore "github.com/dalemusser/orghub/internal/app/store/notifications"
	"github.com/dalemusser/orghub/internal/app/system/bus"
	"github.com/dalemusser/orghub/internal/app/system/mailer"
	"github.com/dalemusser/orghub/internal/app/system/notify"
	"github.com/dalemusser/orghub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const mongoConnectTimeout = 10 * time.Second

// ConnectDB opens the MongoDB connection and the NATS bus, loads the
// in-memory graph, and builds the background workers. Later hooks
// receive DBDeps by value, so everything long-lived is constructed
// here and carried as pointers.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	msgBus, err := bus.Connect(bus.Config{
		URL:      appCfg.NATSURL,
		Embedded: appCfg.NATSEmbedded,
		Port:     appCfg.NATSPort,
	}, logger)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("nats connect: %w", err)
	}

	g, err := graphload.New(db, logger).Load(ctx)
	if err != nil {
		msgBus.Close()
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("load graph: %w", err)
	}

	mail := mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass, appCfg.MailFrom)

	notifyWorkers := notify.NewWorkers(notify.WorkerConfig{
		SiteName:      appCfg.MailFromName,
		SMSGatewayURL: appCfg.SMSGatewayURL,
		SMSToken:      appCfg.SMSToken,
		TelegramToken: appCfg.TelegramBotToken,
	}, msgBus.Conn(), mail, logger)

	retention := workers.NewRetention(notificationstore.New(db), logger,
		appCfg.RetentionInterval, appCfg.RetentionMaxAge)

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Bus:           msgBus,
		Graph:         g,
		Notify:        notifyWorkers,
		Retention:     retention,
	}, nil
}
