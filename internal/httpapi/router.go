package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"travelapi/internal/audit"
	"travelapi/internal/auth"
	"travelapi/internal/blog"
	"travelapi/internal/catalog"
	"travelapi/internal/contact"
	"travelapi/internal/dashboard"
	"travelapi/internal/enquiry"
	"travelapi/internal/review"
	"travelapi/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
	Log *logrus.Logger
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         600,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	contactHandlers := contact.Handlers{DB: deps.DB, Repo: contact.NewRepository(deps.DB), Log: deps.Log}
	enquiryHandlers := enquiry.Handlers{DB: deps.DB, Repo: enquiry.NewRepository(deps.DB), Log: deps.Log}
	reviewHandlers := review.Handlers{DB: deps.DB, Repo: review.NewRepository(deps.DB), Log: deps.Log}
	blogHandlers := blog.Handlers{DB: deps.DB, Repo: blog.NewRepository(deps.DB), Log: deps.Log}
	catalogHandlers := catalog.Handlers{DB: deps.DB, Repo: catalog.NewRepository(deps.DB), Log: deps.Log}
	authHandlers := auth.Handlers{Cfg: deps.Cfg, Log: deps.Log}
	dashboardHandlers := dashboard.Handlers{
		Contacts:  contactHandlers.Repo,
		Enquiries: enquiryHandlers.Repo,
		Reviews:   reviewHandlers.Repo,
		Posts:     blogHandlers.Repo,
		Packages:  catalogHandlers.Repo,
		Audit:     audit.NewRepository(deps.DB),
		Log:       deps.Log,
	}

	// v1
	r.Route("/v1", func(r chi.Router) {
		// Public site
		r.Get("/packages", catalogHandlers.PublicList)
		r.Get("/packages/{slug}", catalogHandlers.PublicGet)
		r.Get("/posts", blogHandlers.PublicList)
		r.Get("/posts/{slug}", blogHandlers.PublicGet)
		r.Get("/reviews", reviewHandlers.PublicFeed)
		r.Post("/contacts", contactHandlers.Create)
		r.Post("/enquiries", enquiryHandlers.Create)
		r.Post("/reviews", reviewHandlers.CreateReview)

		r.Post("/auth/login", authHandlers.Login)

		// Back-office
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AdminAuth(deps.Cfg))

			r.Get("/dashboard", dashboardHandlers.Overview)

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", contactHandlers.List)
				r.Get("/{id}", contactHandlers.Get)
				r.Get("/{id}/events", contactHandlers.Events)
				r.Patch("/{id}/status", contactHandlers.PatchStatus)
				r.Delete("/{id}", contactHandlers.Delete)
			})

			r.Route("/enquiries", func(r chi.Router) {
				r.Get("/", enquiryHandlers.List)
				r.Get("/{id}", enquiryHandlers.Get)
				r.Get("/{id}/events", enquiryHandlers.Events)
				r.Patch("/{id}/status", enquiryHandlers.PatchStatus)
				r.Delete("/{id}", enquiryHandlers.Delete)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", reviewHandlers.ListModeration)
				r.Get("/{id}", reviewHandlers.AdminGetReview)
				r.Patch("/{id}/status", reviewHandlers.PatchReviewStatus)
				r.Delete("/{id}", reviewHandlers.DeleteReview)
			})

			r.Route("/testimonials", func(r chi.Router) {
				r.Post("/", reviewHandlers.CreateTestimonial)
				r.Get("/{id}", reviewHandlers.AdminGetTestimonial)
				r.Put("/{id}", reviewHandlers.UpdateTestimonial)
				r.Patch("/{id}/status", reviewHandlers.PatchTestimonialStatus)
				r.Delete("/{id}", reviewHandlers.DeleteTestimonial)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", blogHandlers.AdminList)
				r.Get("/{id}", blogHandlers.AdminGet)
				r.Post("/", blogHandlers.Create)
				r.Put("/{id}", blogHandlers.Update)
				r.Patch("/{id}", blogHandlers.PatchFlags)
				r.Delete("/{id}", blogHandlers.Delete)
			})

			r.Route("/packages", func(r chi.Router) {
				r.Get("/", catalogHandlers.AdminList)
				r.Get("/{id}", catalogHandlers.AdminGet)
				r.Post("/", catalogHandlers.Create)
				r.Put("/{id}", catalogHandlers.Update)
				r.Patch("/{id}", catalogHandlers.PatchFlags)
				r.Delete("/{id}", catalogHandlers.Delete)
			})
		})
	})

	return r
}
