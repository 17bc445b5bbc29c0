package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moonjaehyun/shiftroster-backend/api/controllers"
	"github.com/moonjaehyun/shiftroster-backend/api/middleware"
	"github.com/moonjaehyun/shiftroster-backend/internal/requests"
	"github.com/moonjaehyun/shiftroster-backend/internal/schedules"
	"github.com/moonjaehyun/shiftroster-backend/internal/staffprefs"
	"github.com/moonjaehyun/shiftroster-backend/pkg/config"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	"github.com/moonjaehyun/shiftroster-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	actorResolver middleware.ActorResolver,
	memberLister controllers.MemberLister,
	schedulesService schedules.Service,
	staffService staffprefs.Service,
	requestsService requests.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.StoreContext(logg))
		r.Use(middleware.ActorContext(actorResolver, logg))

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", controllers.ListSchedules(schedulesService, logg))
			r.Put("/", controllers.UpsertSchedule(schedulesService, logg))
			r.Delete("/{entryId}", controllers.DeleteSchedule(schedulesService, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", controllers.ListStaff(staffService, logg))
			r.Put("/order", controllers.SaveStaffOrder(staffService, logg))
		})

		r.With(middleware.RequireActorRoles(logg, enums.MemberRoleOwner, enums.MemberRoleManager)).
			Get("/members", controllers.ListMembers(memberLister, logg))

		r.Route("/requests", func(r chi.Router) {
			r.With(middleware.RequireActorRoles(logg, enums.MemberRoleManager)).
				Post("/", controllers.CreateRequest(requestsService, logg))
			r.With(middleware.RequireActorRoles(logg, enums.MemberRoleOwner)).
				Get("/pending", controllers.ListPendingRequests(requestsService, logg))
			r.With(middleware.RequireActorRoles(logg, enums.MemberRoleOwner)).
				Get("/", controllers.ListRequests(requestsService, logg))
			r.Route("/{requestId}", func(r chi.Router) {
				r.Use(middleware.RequireActorRoles(logg, enums.MemberRoleOwner))
				r.Post("/approve", controllers.ApproveRequest(requestsService, logg))
				r.Post("/reject", controllers.RejectRequest(requestsService, logg))
			})
		})
	})

	return r
}
