package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "internship-navigator/internal/auth"
	"internship-navigator/internal/internships"
	"internship-navigator/internal/resumes"
	"internship-navigator/internal/shared/config"
	"internship-navigator/internal/shared/server"
	"internship-navigator/internal/shared/server/middleware"
	"internship-navigator/internal/shared/storage/db"
	"internship-navigator/internal/shared/storage/object"
	localstore "internship-navigator/internal/shared/storage/object/local"
	"internship-navigator/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	UsersRepo          users.Repo
	InternshipsRepo    internships.Repo
	UsersService       *users.Service
	ResumesService     *resumes.Service
	AuthHandler        *users.AuthHandler
	ProfileHandler     *users.ProfileHandler
	InternshipsHandler *internships.Handler
	ResumesHandler     *resumes.Handler
	GoogleAuth         *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  localstore.New(cfg.LocalStoreDir),
	}

	buildServices(app)

	if err := internships.Seed(ctx, app.InternshipsRepo, cfg.InternshipsSeed); err != nil {
		log.Printf("bootstrap: failed to seed internships: %v", err)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		AuthHandler:        app.AuthHandler,
		ProfileHandler:     app.ProfileHandler,
		InternshipsHandler: app.InternshipsHandler,
		ResumesHandler:     app.ResumesHandler,
		GoogleAuth:         app.GoogleAuth,
		RateLimiter:        middleware.NewRateLimiter(time.Now),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var userRepo users.Repo
	var internRepo internships.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		internRepo = &internships.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		internRepo = internships.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)
	resumeSvc := &resumes.Service{Store: app.Store}
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.UsersRepo = userRepo
	app.InternshipsRepo = internRepo
	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.AuthHandler = users.NewAuthHandler(userSvc)
	app.ProfileHandler = users.NewProfileHandler(userSvc)
	app.InternshipsHandler = internships.NewHandler(internRepo)
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.GoogleAuth = googleAuthSvc
}
