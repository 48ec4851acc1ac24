// router.go — маршруты сайта.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/labportal/internal/api/handlers"
	"github.com/bigkaa/labportal/internal/i18n"
)

// Routes — обработчики, из которых собирается роутер.
// Editorial и EditorAuth равны nil, если редакторский API отключён.
type Routes struct {
	Site       *handlers.SiteHandler
	Contact    *handlers.ContactHandler
	Health     *handlers.HealthHandler
	Editorial  *handlers.EditorialHandler
	EditorAuth func(http.Handler) http.Handler
}

// NewRouter собирает chi-роутер. middlewares применяются ко всем маршрутам
// в переданном порядке, i18n.Middleware — после них.
func NewRouter(rt Routes, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health/live", rt.Health.HealthLive)
	r.Get("/health/ready", rt.Health.HealthReady)
	r.Get("/metrics", rt.Health.GetMetrics)

	r.Group(func(r chi.Router) {
		r.Use(i18n.Middleware())

		r.Post("/i18n/setlang", i18n.HandleSetLanguage)
		r.Post("/send-telegram/", rt.Contact.Submit)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/home", rt.Site.Home)
			r.Get("/labs", rt.Site.Labs)
			r.Get("/projects/category/{category}", rt.Site.ProjectsByCategory)
			r.Get("/projects/{slug}", rt.Site.ProjectDetail)
			r.Get("/team", rt.Site.TeamRoster)
			r.Get("/team/{slug}", rt.Site.TeamMemberDetail)
			r.Get("/news", rt.Site.NewsList)
			r.Get("/news/{slug}", rt.Site.NewsDetail)
			r.Post("/contact", rt.Contact.Submit)

			if rt.Editorial != nil && rt.EditorAuth != nil {
				r.Route("/editor", func(r chi.Router) {
					r.Use(rt.EditorAuth)

					r.Post("/projects", rt.Editorial.CreateProject)
					r.Put("/projects/{slug}", rt.Editorial.UpdateProject)
					r.Delete("/projects/{slug}", rt.Editorial.DeleteProject)

					r.Post("/team", rt.Editorial.CreateTeamMember)
					r.Delete("/team/{slug}", rt.Editorial.DeleteTeamMember)

					r.Post("/publications", rt.Editorial.CreatePublication)

					r.Post("/news", rt.Editorial.CreateNews)
					r.Put("/news/{slug}", rt.Editorial.UpdateNews)
					r.Delete("/news/{slug}", rt.Editorial.DeleteNews)

					r.Post("/services", rt.Editorial.CreateService)
				})
			}
		})
	})

	return r
}
