package api

import (
	"net/http"
	"os"

	chatHandlers "github.com/dumplinhq/dumplin-api/chat/handlers"
	"github.com/dumplinhq/dumplin-api/cmd/api/handlers"
	"github.com/dumplinhq/dumplin-api/framework/connection"
	"github.com/dumplinhq/dumplin-api/framework/mid"
	"github.com/dumplinhq/dumplin-api/framework/web"
	"github.com/dumplinhq/dumplin-api/logger"
	subscriptionHandlers "github.com/dumplinhq/dumplin-api/subscription/handlers"
)

// API constructs an api with the needed functionality.
type API struct {
	shutdown chan os.Signal
	log      *logger.Logging
	conn     *connection.Connection
}

func NewAPI(shutdown chan os.Signal, logging *logger.Logging, conn *connection.Connection) *API {
	return &API{
		shutdown,
		logging,
		conn,
	}
}

// Build builds the api endpoints with the needed middlewares, and returns http.Handler interface.
func (a *API) Build() http.Handler {
	loggerProvider := logger.FromContext

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(a.shutdown, a.conn, mid.Logger(), mid.Errors(), mid.Panics(), mid.Sentry(), mid.CORS())

	health := handlers.NewHealth()
	webhook := subscriptionHandlers.NewWebhook(loggerProvider, a.conn)
	subscriptions := subscriptionHandlers.NewSubscription(loggerProvider, a.conn)
	chat := chatHandlers.NewChat(loggerProvider, a.conn)

	app.Get("/", health.Root)
	app.Get("/health", health.Check)

	apiV1 := web.NewGroup(app, "/api/v1")

	// Webhook deliveries authenticate by payload signature, not by api key.
	webhooksGroup := apiV1.NewSubgroup("/webhooks")
	webhooksGroup.Post("/revenuecat", webhook.HandleRevenueCatWebhook)

	subscriptionsGroup := apiV1.NewSubgroup("/subscriptions", mid.AuthAPIKey())
	subscriptionsGroup.Get("/status/:userID", subscriptions.GetStatus, mid.ValidatePathParamNotEmpty("userID"))
	subscriptionsGroup.Post("/check-message-limit/:userID", subscriptions.CheckMessageLimit, mid.ValidatePathParamNotEmpty("userID"))

	chatGroup := apiV1.NewSubgroup("/chat", mid.AuthAPIKey())
	chatGroup.Post("", chat.SendMessage)
	chatGroup.Get("/limit/:userID", chat.GetMessageLimit, mid.ValidatePathParamNotEmpty("userID"))

	return app
}
