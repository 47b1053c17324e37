// Package httpapi exposes the account service over JSON/HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/profilehub/internal/logging"
	"github.com/dmitrijs2005/profilehub/internal/server/models"
	"github.com/dmitrijs2005/profilehub/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// AccountService is the part of the account service the handlers need.
type AccountService interface {
	Register(ctx context.Context, p services.RegisterParams) (*models.Account, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	UploadAvatar(ctx context.Context, data []byte) (string, error)
	SetAvatar(ctx context.Context, id string, url string) (*models.Account, error)
	UpdateProfile(ctx context.Context, id string, patch models.AccountPatch) (string, error)
	Delete(ctx context.Context, id string) (string, error)
	GetOne(ctx context.Context, id string) (*models.Account, error)
	GetAll(ctx context.Context) ([]*models.Account, error)
	SearchByName(ctx context.Context, substring string) ([]*models.Account, error)
}

type Server struct {
	address   string
	accounts  AccountService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, svc AccountService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		accounts:  svc,
		jwtSecret: []byte(secretKey),
	}
}

// Routes assembles the public router: registration and login are open,
// everything else requires a bearer token.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/avatars", s.handleUploadAvatar)

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", s.handleGetAll)
				r.Get("/search", s.handleSearch)
				r.Get("/{id}", s.handleGetOne)
				r.Patch("/{id}", s.handleUpdateProfile)
				r.Delete("/{id}", s.handleDelete)
				r.Put("/{id}/avatar", s.handleSetAvatar)
			})
		})
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
