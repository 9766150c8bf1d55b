package mailer

import (
	"context"
	"time"

	"github.com/oksasatya/notegenius-api/config"
	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
	mailtpl "github.com/oksasatya/notegenius-api/pkg/mailer/templates"
)

// JSONPublisher puts a JSON document on a queue. *helpers.RabbitPublisher satisfies it.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueNotifier enqueues password reset emails for the email worker.
type QueueNotifier struct {
	Pub JSONPublisher
	Cfg *config.Config
}

func NewQueueNotifier(pub JSONPublisher, cfg *config.Config) *QueueNotifier {
	return &QueueNotifier{Pub: pub, Cfg: cfg}
}

func (n *QueueNotifier) NotifyPasswordReset(ctx context.Context, u *entity.User, token string, expiresAt time.Time) error {
	ci := helpers.ClientInfoFrom(ctx)
	data := mailtpl.NewPasswordResetData(n.Cfg, u.Name, u.Email, token,
		mailtpl.WithExpiresAt(expiresAt),
		mailtpl.WithTime(time.Now()),
		mailtpl.WithIP(ci.IP),
		mailtpl.WithUserAgent(ci.UserAgent),
	)
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return n.Pub.PublishJSON(c, EmailJob{
		To:       u.Email,
		Template: mailtpl.PasswordReset,
		Data:     data,
	})
}
