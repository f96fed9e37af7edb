package service

import (
	"fmt"
	"log/slog"

	"github.com/Nabz863/group17-freelance-sd-sub000/config"
	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/wneessen/go-mail"
	"gorm.io/gorm"
)

// Mailer delivers notification email best-effort: failures are logged and
// never surfaced to the request that triggered them.
type Mailer struct {
	cfg *config.SMTPConfig
	db  *gorm.DB
}

func NewMailer(cfg *config.SMTPConfig, db *gorm.DB) *Mailer {
	return &Mailer{cfg: cfg, db: db}
}

// Notify emails the user about an event. Runs asynchronously; the caller
// never waits on SMTP.
func (m *Mailer) Notify(userID string, n model.Notification) {
	if !m.cfg.Enabled {
		return
	}
	go func() {
		var user model.User
		if err := m.db.First(&user, "id = ?", userID).Error; err != nil {
			slog.Warn("mail notification skipped", "user_id", userID, "error", err)
			return
		}
		if err := m.send(user.Email, "Marketplace notification", n.Message); err != nil {
			slog.Warn("failed to send notification mail", "user_id", userID, "error", err)
		}
	}()
}

// SendApprovalDecision emails the outcome of an admin approval decision.
func (m *Mailer) SendApprovalDecision(user *model.User, approved bool) {
	if !m.cfg.Enabled {
		return
	}
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	body := fmt.Sprintf("Hello %s,\n\nYour account has been %s.\n", user.Name, outcome)
	go func() {
		if err := m.send(user.Email, "Your account review", body); err != nil {
			slog.Warn("failed to send approval mail", "user_id", user.ID, "error", err)
		}
	}()
}

func (m *Mailer) send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	return client.DialAndSend(msg)
}
