// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	channelsfeature "github.com/dalemusser/orghub/internal/app/features/channels"
	healthfeature "github.com/dalemusser/orghub/internal/app/features/health"
	loginfeature "github.com/dalemusser/orghub/internal/app/features/login"
	notificationsfeature "github.com/dalemusser/orghub/internal/app/features/notifications"
	organizationsfeature "github.com/dalemusser/orghub/internal/app/features/organizations"
	usersfeature "github.com/dalemusser/orghub/internal/app/features/users"
	channelstore "github.com/dalemusser/orghub/internal/app/store/channels"
	linkstore "github.com/dalemusser/orghub/internal/app/store/links"
	notificationstore "github.com/dalemusser/orghub/internal/app/store/notifications"
	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	userstore "github.com/dalemusser/orghub/internal/app/store/users"
	"github.com/dalemusser/orghub/internal/app/system/apitoken"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/notify"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. The router mounts one feature
// per URL prefix; every feature decides its own auth requirements in
// its Routes function.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	tokens := apitoken.New(appCfg.APITokenSecret, appCfg.APITokenTTL)

	db := deps.MongoDatabase
	users := userstore.New(db)
	orgs := organizationstore.New(db)
	links := linkstore.New(db)
	channels := channelstore.New(db)
	inbox := notificationstore.New(db)

	dispatcher := notify.NewDispatcher(channels, inbox, deps.Bus.Conn(), logger)

	r := chi.NewRouter()

	// Session cookie first, bearer token second: either one puts the
	// current user into the request context.
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(tokens.Middleware)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Bus.Conn(), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	loginHandler := loginfeature.NewHandler(users, sessionMgr, tokens,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.SessionKey, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Post("/logout", loginHandler.HandleLogout)

	usersHandler := usersfeature.NewHandler(users, links, channels, inbox, deps.Graph, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	orgsHandler := organizationsfeature.NewHandler(orgs, links, users, deps.Graph, logger)
	r.Mount("/organizations", organizationsfeature.Routes(orgsHandler))

	channelsHandler := channelsfeature.NewHandler(channels, logger)
	r.Mount("/channels", channelsfeature.Routes(channelsHandler))

	notificationsHandler := notificationsfeature.NewHandler(dispatcher, inbox, deps.Graph, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

	return r, nil
}
