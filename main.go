package main

import (
	"flag"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"minitweet/crud"
	"minitweet/domain"
	"minitweet/http"
	"minitweet/storage"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're running in production.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a config.yaml file is provided before the application starts.")
	seedBool := flag.Bool("seed", false, "Create demo users with fresh API keys, log them, and exit. Users are otherwise never created by the API.")
	flag.Parse()

	// Load configuration from a config.yaml file if present, otherwise use the default
	// dev setup. If *productionBool evaluates to true the file is required and the app
	// will panic if none is found.
	config := LoadConfig(*productionBool)

	logger := newLogger(config.IsProd())
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Report panics and captured errors to sentry if a DSN is configured.
	withSentry := config.Sentry.DSN != ""
	if withSentry {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.Sentry.DSN,
			Environment: config.Env,
		})
		must(err)
		defer sentry.Flush(2 * time.Second)
	}

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(),
		crud.WithTweet(),
		crud.WithFollow(),
		crud.WithLike(),
		crud.WithMedia(storage.NewMediaStore(config.UploadDir)),
	)
	must(err)

	// Seeding replaces serving: create the demo users and exit.
	if *seedBool {
		seedUsers(logger, services.User)
		return
	}

	// Set up a webserver and serve the app.
	server := http.NewServer(logger, config.UploadDir, withSentry, services)
	logger.Info("listening", zap.Int("port", config.Port), zap.String("env", config.Env))
	must(server.Run(config.Port))
}

// newLogger builds the process logger: human-readable in dev, json in prod.
func newLogger(isProd bool) *zap.Logger {
	if isProd {
		logger, err := zap.NewProduction()
		must(err)
		return logger
	}
	logger, err := zap.NewDevelopment()
	must(err)
	return logger
}

// seedUsers creates a couple of demo users with generated API keys and logs
// the keys, since there is no registration endpoint to obtain one through.
func seedUsers(logger *zap.Logger, us *crud.UserService) {
	for _, name := range []string{"test", "admin"} {
		user := domain.User{Name: name}
		if err := us.Create(&user); err != nil {
			logger.Error("err seeding user", zap.String("name", name), zap.Error(err))
			continue
		}
		logger.Info("seeded user",
			zap.Int("id", user.ID),
			zap.String("name", user.Name),
			zap.String("api_key", user.APIKey),
		)
	}
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
