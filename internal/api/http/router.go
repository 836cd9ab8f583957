package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-service/internal/api/http/handlers"
	"github.com/spec-kit/lawfirm-service/internal/auth"
	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Cases          *handlers.CasesHandler
	Retainers      *handlers.RetainersHandler
	Jobs           *handlers.JobsHandler
	Reminders      *handlers.RemindersHandler
	Guilds         *handlers.GuildsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// seniorPartnerLevel gates promotion, demotion and hiring.
const seniorPartnerLevel = 5

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/clients/register", cfg.Auth.RegisterClient)
	authGroup.Post("/clients/login", cfg.Auth.LoginClient)
	authGroup.Post("/staff/login", cfg.Auth.LoginStaff)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	// Client self-service endpoints.
	me := app.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireClient())
	me.Get("/retainers", cfg.Retainers.ListForClient)
	me.Post("/retainers/:id/sign", cfg.Retainers.Sign)
	me.Post("/retainers/:id/decline", cfg.Retainers.Decline)

	guild := app.Group("/guilds/:guild_id")

	// Public within a guild: anyone can browse open postings and apply.
	guild.Get("/jobs", cfg.Jobs.ListPostings)
	guild.Post("/jobs/:id/apply", cfg.Jobs.Apply)

	// Client view of their own cases.
	guild.Get("/me/cases", cfg.AuthMiddleware.Handle, auth.RequireClient(), cfg.Cases.MyCases)

	staff := guild.Group("", cfg.AuthMiddleware.Handle, auth.RequireStaff())

	// Roster. Hiring and ladder moves need Senior Partner authority; the
	// service re-checks against the target's rank.
	staff.Get("/staff", cfg.Staff.Roster)
	staff.Get("/staff/:id", cfg.Staff.Get)
	senior := staff.Group("", auth.RequireMinimumLevel(seniorPartnerLevel))
	senior.Post("/staff", cfg.Staff.Hire)
	senior.Post("/staff/:id/promote", cfg.Staff.Promote)
	senior.Post("/staff/:id/demote", cfg.Staff.Demote)
	senior.Post("/staff/:id/terminate", cfg.Staff.Terminate)

	// Cases.
	staff.Post("/cases", cfg.Cases.Open)
	staff.Get("/cases", cfg.Cases.List)
	staff.Get("/cases/number/:number", cfg.Cases.GetByNumber)
	staff.Get("/cases/:id", cfg.Cases.Get)
	staff.Post("/cases/:id/status", cfg.Cases.UpdateStatus)
	staff.Post("/cases/:id/priority", cfg.Cases.UpdatePriority)
	staff.Post("/cases/:id/close", cfg.Cases.Close)
	staff.Post("/cases/:id/assign", cfg.Cases.Assign)
	staff.Post("/cases/:id/unassign", cfg.Cases.Unassign)
	staff.Post("/cases/:id/lead", cfg.Cases.SetLead)

	// Retainers.
	staff.Post("/retainers", cfg.Retainers.Create)
	staff.Get("/retainers", cfg.Retainers.ListMine)

	// Jobs. Partners manage postings and decide applications.
	partner := staff.Group("", auth.RequireMinimumLevel(4))
	partner.Post("/jobs", cfg.Jobs.CreatePosting)
	partner.Post("/jobs/:id/close", cfg.Jobs.ClosePosting)
	partner.Get("/jobs/:id/applications", cfg.Jobs.ListApplications)
	senior.Post("/applications/:id/accept", cfg.Jobs.Accept)
	partner.Post("/applications/:id/reject", cfg.Jobs.Reject)

	// Reminders.
	staff.Post("/reminders", cfg.Reminders.Schedule)
	staff.Get("/reminders", cfg.Reminders.ListMine)
	staff.Post("/reminders/:id/cancel", cfg.Reminders.Cancel)

	// Guild configuration and audit trail.
	staff.Get("/config", cfg.Guilds.GetConfig)
	staff.Put("/config",
		auth.RequireStaffRole(domain.StaffRoleManagingPartner),
		cfg.Guilds.UpdateConfig,
	)
	staff.Get("/audit", auth.RequireMinimumLevel(seniorPartnerLevel), cfg.Guilds.ListAudit)
}
