package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iemarche/inquiry-service/internal/api/http/handlers"
	"github.com/iemarche/inquiry-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Directory       *handlers.DirectoryHandler
	Inquiries       *handlers.InquiriesHandler
	MemberInquiries *handlers.MemberInquiriesHandler
	MemberCases     *handlers.MemberCasesHandler
	AdminInquiries  *handlers.AdminInquiriesHandler
	AdminMembers    *handlers.AdminMembersHandler
	AdminTags       *handlers.AdminTagsHandler
	Metrics         *handlers.MetricsHandler
	AuthMiddleware  *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/customers/register", cfg.Auth.RegisterCustomer)
	authGroup.Post("/customers/login", cfg.Auth.LoginCustomer)
	authGroup.Post("/members/login", cfg.Auth.LoginMember)
	authGroup.Post("/admins/login", cfg.Auth.LoginAdmin)

	// Public directory.
	app.Get("/companies", cfg.Directory.ListCompanies)
	app.Get("/companies/:id", cfg.Directory.GetCompany)
	app.Get("/companies/:id/cases", cfg.Directory.ListCompanyCases)
	app.Get("/cases", cfg.Directory.ListCases)
	app.Get("/cases/:id", cfg.Directory.GetCase)
	app.Get("/tags", cfg.Directory.ListTags)

	// Anyone may submit a general inquiry; a bearer token, when present,
	// attaches the customer profile and unlocks company-directed submission.
	app.Post("/inquiries", cfg.AuthMiddleware.HandleOptional, cfg.Inquiries.SubmitInquiry)
	app.Get("/inquiries/lookup/:key", cfg.Inquiries.LookupInquiry)

	authGroup.Put("/customers/me", cfg.AuthMiddleware.Handle, auth.RequireCustomer(), cfg.Auth.UpdateProfile)

	customer := app.Group("/inquiries", cfg.AuthMiddleware.Handle, auth.RequireCustomer())
	customer.Get("", cfg.Inquiries.ListMyInquiries)
	customer.Get("/:id", cfg.Inquiries.GetMyInquiry)
	customer.Post("/:id/responses", cfg.Inquiries.AddMyResponse)

	member := app.Group("/member/inquiries", cfg.AuthMiddleware.Handle, auth.RequireMember())
	member.Get("", cfg.MemberInquiries.ListInquiries)
	member.Get("/:id", cfg.MemberInquiries.GetInquiry)
	member.Patch("/:id/status", cfg.MemberInquiries.UpdateStatus)
	member.Patch("/:id/notes", cfg.MemberInquiries.UpdateNotes)
	member.Post("/:id/responses", cfg.MemberInquiries.AddResponse)

	memberCases := app.Group("/member/cases", cfg.AuthMiddleware.Handle, auth.RequireMember())
	memberCases.Post("", cfg.MemberCases.CreateCase)
	memberCases.Put("/:id/tags", cfg.MemberCases.SetCaseTags)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/inquiries", cfg.AdminInquiries.ListInquiries)
	admin.Get("/inquiries/:id", cfg.AdminInquiries.GetInquiry)
	admin.Patch("/inquiries/:id/status", cfg.AdminInquiries.UpdateStatus)
	admin.Patch("/inquiries/:id/notes", cfg.AdminInquiries.UpdateNotes)
	admin.Post("/inquiries/:id/responses", cfg.AdminInquiries.AddResponse)
	admin.Delete("/companies/:id", cfg.AdminInquiries.DeleteCompany)
	admin.Get("/companies/:id/members", cfg.AdminMembers.ListCompanyMembers)
	admin.Patch("/members/:id/active", cfg.AdminMembers.SetMemberActive)
	admin.Post("/tags", cfg.AdminTags.CreateTag)
	admin.Patch("/tags/:id", cfg.AdminTags.RenameTag)
	admin.Post("/tags/:id/move", cfg.AdminTags.MoveTag)
	admin.Delete("/tags/:id", cfg.AdminTags.DeleteTag)
	admin.Get("/metrics", cfg.Metrics.Snapshot)
}
