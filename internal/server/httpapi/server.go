package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/trackit/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server owns the Fiber application and the route table.
type Server struct {
	address   string
	logger    logging.Logger
	auth      *AuthHandler
	jobs      *JobsHandler
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, users UserService, jobs JobService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		auth:      NewAuthHandler(users),
		jobs:      NewJobsHandler(jobs),
		jwtSecret: []byte(secretKey),
	}
}

// newApp builds the Fiber app and registers every route. Split out from Run
// so tests can drive the router with app.Test.
func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", s.auth.Signup)
	authGroup.Post("/login", s.auth.Login)
	authGroup.Post("/guest-login", s.auth.GuestLogin)

	jobsGroup := api.Group("/jobs", NewAuthMiddleware(s.jwtSecret))
	jobsGroup.Get("/", s.jobs.List)
	jobsGroup.Post("/", s.jobs.Create)
	jobsGroup.Get("/:id", s.jobs.Get)
	jobsGroup.Put("/:id", s.jobs.Update)
	jobsGroup.Delete("/:id", s.jobs.Delete)

	// Guests carry no server-side jobs, so mutating resume routes are
	// closed to them outright.
	jobsGroup.Post("/:id/resume", requireRegistered, s.jobs.UploadResume)
	jobsGroup.Get("/:id/resume/:versionId", s.jobs.ViewResume)
	jobsGroup.Get("/:id/resume/:versionId/download", s.jobs.DownloadResume)
	jobsGroup.Delete("/:id/resume/:versionId", requireRegistered, s.jobs.DeleteResume)

	return app
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	app := s.newApp()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := app.Listen(s.address); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
