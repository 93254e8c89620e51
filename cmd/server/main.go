package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	_ "himti/docs" // swagger docs

	"himti/internal/app"
)

// @title HIMTI API
// @version 1.0
// @description Backend for the HIMTI student organization: accounts, forums, articles, organization structure, events and galleries.
// @host localhost:4000
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth_token
func main() {
	fx.New(
		app.Module(),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	).Run()
}
