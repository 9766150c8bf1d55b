package router

import (
	"github.com/oksasatya/notegenius-api/internal/application"
	"github.com/oksasatya/notegenius-api/internal/container"
	"github.com/oksasatya/notegenius-api/internal/infrastructure/postgres"
	"github.com/oksasatya/notegenius-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/notegenius-api/internal/interface/http"
	"github.com/oksasatya/notegenius-api/internal/router/modules"
	"github.com/oksasatya/notegenius-api/pkg/mailer"
)

type moduleDeps struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Notes    *handlers.NoteHandler
	Payments *handlers.PaymentHandler
	Tickets  *handlers.TicketHandler
}

func buildDeps() moduleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	cache := container.GetListCache()
	hasher := container.GetHasher()
	errs := handlers.Errors{Logger: logger, Dev: cfg.IsDevelopment()}

	users := postgres.NewUserRepository(pool)

	var notifier application.ResetNotifier
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = mailer.NewQueueNotifier(pub, cfg)
	}

	authSvc := application.NewAuthService(users, hasher, container.GetJWT(), notifier, cache, logger, application.AuthConfig{
		SessionTTL:       cfg.SessionTTL,
		ResetTTL:         cfg.ResetTTL,
		ExposeResetToken: cfg.IsDevelopment(),
	})

	var audit handlers.AuditRecorder
	if es := container.GetES(); es != nil {
		audit = search.NewAuditLog(es, cfg.ESAuditIndex, logger)
	}

	return moduleDeps{
		Auth:     handlers.NewAuthHandler(authSvc, audit, errs),
		Users:    handlers.NewUserHandler(application.NewUserService(users, hasher, cache, cfg.CacheTTL, logger), errs),
		Notes:    handlers.NewNoteHandler(application.NewNoteService(postgres.NewNoteRepository(pool), cache, cfg.CacheTTL, logger), errs),
		Payments: handlers.NewPaymentHandler(application.NewPaymentService(postgres.NewPaymentRepository(pool), cache, cfg.CacheTTL, logger), errs),
		Tickets:  handlers.NewTicketHandler(application.NewTicketService(postgres.NewTicketRepository(pool), cache, cfg.CacheTTL, logger), errs),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()

	r.Add("/auth", modules.NewAuthModule(deps.Auth))
	r.Add("/api", modules.NewWelcomeModule())
	r.Add("/api", modules.NewResourceModule("/users", deps.Users))
	r.Add("/api", modules.NewResourceModule("/notes", deps.Notes))
	r.Add("/api", modules.NewResourceModule("/payments", deps.Payments))
	r.Add("/api", modules.NewResourceModule("/tickets", deps.Tickets))

	if container.GetConfig().DebugMetricsEnabled {
		if reg := container.GetMetricsRegistry(); reg != nil {
			r.Add("", modules.NewDebugModule(reg))
		}
	}
}
