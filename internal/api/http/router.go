package http

import (
	"context"
	"net/http"

	"ngoforum-backend/internal/security"
	"ngoforum-backend/internal/service"
	"ngoforum-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles everything the router dispatches to
type Services struct {
	Auth          service.AuthService
	Moderation    service.ModerationService
	Organizations service.OrganizationService
	Applications  service.ApplicationService
	Payments      service.PaymentService
	Forum         service.ForumService
	Events        service.EventService
	Postings      service.PostingService
	Resources     service.ResourceService
	Presence      service.PresenceService
	Security      service.SecurityService
	Uploads       service.UploadService
	Pages         service.PageService
	Contact       service.ContactService

	Tokens        security.TokenManager
	LocalStore    storage.LocalStore // optional
	MaxFileSizeMB int64
	// Ping reports database health for /healthz
	Ping func(ctx context.Context) error
}

// NewRouter wires every route. Route names key the security levels in
// config.EndpointSecurityConfig.
func NewRouter(s Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, MetricsMiddleware, RecoveryMiddleware, NewAuthMiddleware(s.Tokens).Handler)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")
	router.HandleFunc("/healthz", healthz(s.Ping)).Methods(http.MethodGet).Name("healthz")

	api := router.PathPrefix("/api/v1").Subrouter()

	auth := NewAuthHandler(s.Auth)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/refresh", auth.Refresh).Methods(http.MethodPost).Name("auth.refresh")
	api.HandleFunc("/auth/me", auth.Me).Methods(http.MethodGet).Name("auth.me")

	members := NewMemberHandler(s.Organizations, s.Applications, s.Payments)
	api.HandleFunc("/public/members", members.ListMembers).Methods(http.MethodGet).Name("members.list")
	api.HandleFunc("/public/members/{slug}", members.GetMember).Methods(http.MethodGet).Name("members.get")
	api.HandleFunc("/profile", members.GetProfile).Methods(http.MethodGet).Name("profile.get")
	api.HandleFunc("/profile", members.UpdateProfile).Methods(http.MethodPut).Name("profile.update")
	api.HandleFunc("/profile/contacts", members.AddContact).Methods(http.MethodPost).Name("profile.contacts.add")
	api.HandleFunc("/staff/members/{id:[0-9]+}/status", members.SetMemberStatus).Methods(http.MethodPut).Name("staff.members.setStatus")
	api.HandleFunc("/applications", members.SubmitApplication).Methods(http.MethodPost).Name("applications.submit")
	api.HandleFunc("/applications", members.ListApplications).Methods(http.MethodGet).Name("applications.list")
	api.HandleFunc("/staff/applications/{id:[0-9]+}/review", members.ReviewApplication).Methods(http.MethodPost).Name("staff.applications.review")
	api.HandleFunc("/payments", members.CreatePayment).Methods(http.MethodPost).Name("payments.create")
	api.HandleFunc("/payments", members.ListPayments).Methods(http.MethodGet).Name("payments.list")
	api.HandleFunc("/staff/payments/{id:[0-9]+}/status", members.SetPaymentStatus).Methods(http.MethodPut).Name("staff.payments.setStatus")

	moderation := NewModerationHandler(s.Moderation)
	api.HandleFunc("/moderation/submissions", moderation.Submit).Methods(http.MethodPost).Name("moderation.submit")
	api.HandleFunc("/staff/moderation", moderation.List).Methods(http.MethodGet).Name("staff.moderation.list")
	api.HandleFunc("/staff/moderation/{id:[0-9]+}", moderation.Get).Methods(http.MethodGet).Name("staff.moderation.get")
	api.HandleFunc("/staff/moderation/{id:[0-9]+}/approve", moderation.Approve).Methods(http.MethodPost).Name("staff.moderation.approve")
	api.HandleFunc("/staff/moderation/{id:[0-9]+}/reject", moderation.Reject).Methods(http.MethodPost).Name("staff.moderation.reject")

	forum := NewForumHandler(s.Forum)
	api.HandleFunc("/forum/categories", forum.ListCategories).Methods(http.MethodGet).Name("forum.categories")
	api.HandleFunc("/forum/posts", forum.ListPosts).Methods(http.MethodGet).Name("forum.posts.list")
	api.HandleFunc("/forum/posts", forum.CreatePost).Methods(http.MethodPost).Name("forum.posts.create")
	api.HandleFunc("/forum/posts/mine", forum.ListMyPosts).Methods(http.MethodGet).Name("forum.posts.mine")
	api.HandleFunc("/forum/posts/{id:[0-9]+}/comments", forum.ListComments).Methods(http.MethodGet).Name("forum.posts.comments")
	api.HandleFunc("/forum/posts/{slug}", forum.GetPost).Methods(http.MethodGet).Name("forum.posts.get")
	api.HandleFunc("/forum/comments", forum.CreateComment).Methods(http.MethodPost).Name("forum.comments.create")

	events := NewEventHandler(s.Events)
	api.HandleFunc("/events", events.List).Methods(http.MethodGet).Name("events.list")
	api.HandleFunc("/events", events.Create).Methods(http.MethodPost).Name("events.create")
	api.HandleFunc("/events/mine", events.ListMine).Methods(http.MethodGet).Name("events.mine")
	api.HandleFunc("/events/attendances", events.ListMyAttendances).Methods(http.MethodGet).Name("events.attendances")
	api.HandleFunc("/events/{id:[0-9]+}", events.Get).Methods(http.MethodGet).Name("events.get")
	api.HandleFunc("/events/{id:[0-9]+}/register", events.Register).Methods(http.MethodPost).Name("events.register")

	postings := NewPostingHandler(s.Postings)
	api.HandleFunc("/jobs", postings.ListJobs).Methods(http.MethodGet).Name("jobs.list")
	api.HandleFunc("/jobs", postings.CreateJob).Methods(http.MethodPost).Name("jobs.create")
	api.HandleFunc("/jobs/mine", postings.ListMyJobs).Methods(http.MethodGet).Name("jobs.mine")
	api.HandleFunc("/trainings", postings.ListTrainings).Methods(http.MethodGet).Name("trainings.list")
	api.HandleFunc("/trainings", postings.CreateTraining).Methods(http.MethodPost).Name("trainings.create")
	api.HandleFunc("/trainings/mine", postings.ListMyTrainings).Methods(http.MethodGet).Name("trainings.mine")
	api.HandleFunc("/tenders", postings.ListTenders).Methods(http.MethodGet).Name("tenders.list")
	api.HandleFunc("/tenders", postings.CreateTender).Methods(http.MethodPost).Name("tenders.create")
	api.HandleFunc("/tenders/mine", postings.ListMyTenders).Methods(http.MethodGet).Name("tenders.mine")

	resources := NewResourceHandler(s.Resources)
	api.HandleFunc("/resources/categories", resources.ListCategories).Methods(http.MethodGet).Name("resources.categories")
	api.HandleFunc("/resources", resources.List).Methods(http.MethodGet).Name("resources.list")
	api.HandleFunc("/resources", resources.Create).Methods(http.MethodPost).Name("resources.create")
	api.HandleFunc("/resources/mine", resources.ListMine).Methods(http.MethodGet).Name("resources.mine")
	api.HandleFunc("/resources/{id:[0-9]+}/download", resources.TrackDownload).Methods(http.MethodPost).Name("resources.download")
	api.HandleFunc("/faqs/categories", resources.ListFAQCategories).Methods(http.MethodGet).Name("faqs.categories")
	api.HandleFunc("/faqs", resources.ListFAQs).Methods(http.MethodGet).Name("faqs.list")

	presence := NewPresenceHandler(s.Presence)
	api.HandleFunc("/3w/states", presence.ListStates).Methods(http.MethodGet).Name("3w.states")
	api.HandleFunc("/3w/counties", presence.ListCounties).Methods(http.MethodGet).Name("3w.counties")
	api.HandleFunc("/3w/sectors", presence.ListSectors).Methods(http.MethodGet).Name("3w.sectors")
	api.HandleFunc("/3w/presence", presence.List).Methods(http.MethodGet).Name("3w.presence.list")
	api.HandleFunc("/3w/presence", presence.Create).Methods(http.MethodPost).Name("3w.presence.create")
	api.HandleFunc("/3w/presence/export", presence.Export).Methods(http.MethodGet).Name("3w.presence.export")
	api.HandleFunc("/3w/presence/mine", presence.ListMine).Methods(http.MethodGet).Name("3w.presence.mine")
	api.HandleFunc("/3w/presence/{id:[0-9]+}", presence.Delete).Methods(http.MethodDelete).Name("3w.presence.delete")

	sec := NewSecurityHandler(s.Security)
	api.HandleFunc("/security/incidents", sec.ListIncidents).Methods(http.MethodGet).Name("security.incidents.list")
	api.HandleFunc("/security/incidents", sec.ReportIncident).Methods(http.MethodPost).Name("security.incidents.create")
	api.HandleFunc("/security/incidents/{id:[0-9]+}", sec.GetIncident).Methods(http.MethodGet).Name("security.incidents.get")
	api.HandleFunc("/staff/security/incidents/{id:[0-9]+}", sec.UpdateIncident).Methods(http.MethodPut).Name("staff.incidents.update")
	api.HandleFunc("/security/constraints", sec.ListConstraints).Methods(http.MethodGet).Name("security.constraints.list")
	api.HandleFunc("/security/constraints", sec.ReportConstraint).Methods(http.MethodPost).Name("security.constraints.create")
	api.HandleFunc("/security/constraints/{id:[0-9]+}", sec.GetConstraint).Methods(http.MethodGet).Name("security.constraints.get")
	api.HandleFunc("/staff/security/constraints/{id:[0-9]+}", sec.UpdateConstraint).Methods(http.MethodPut).Name("staff.constraints.update")

	pages := NewPageHandler(s.Pages, s.Contact)
	api.HandleFunc("/pages", pages.ListPages).Methods(http.MethodGet).Name("pages.list")
	api.HandleFunc("/pages/{slug}", pages.GetPage).Methods(http.MethodGet).Name("pages.get")
	api.HandleFunc("/announcements", pages.ListAnnouncements).Methods(http.MethodGet).Name("announcements.list")
	api.HandleFunc("/contact", pages.SendContact).Methods(http.MethodPost).Name("contact.create")
	api.HandleFunc("/staff/contact", pages.ListContact).Methods(http.MethodGet).Name("staff.contact.list")
	api.HandleFunc("/staff/contact/{id:[0-9]+}/status", pages.SetContactStatus).Methods(http.MethodPut).Name("staff.contact.setStatus")

	uploads := NewUploadHandler(s.Uploads, s.LocalStore, s.MaxFileSizeMB)
	api.HandleFunc("/uploads", uploads.RequestUpload).Methods(http.MethodPost).Name("uploads.request")
	if s.LocalStore != nil {
		api.HandleFunc("/upload/{token}", uploads.HandleUpload).Methods(http.MethodPut).Name("upload.put")
		api.HandleFunc("/download/{key:(?:logo|resource|tender_document)/.+}", uploads.HandleDownload).Methods(http.MethodGet).Name("download.public")
		api.HandleFunc("/download/{key:.+}", uploads.HandleDownload).Methods(http.MethodGet).Name("download.private")
	}

	return router
}

func healthz(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
