package notification

import (
	"context"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

type SMTPConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	From       string
	TLSEnabled bool
}

type smtpDispatcher struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

// NewSMTPDispatcher delivers rendered templates over SMTP. With an empty
// host the dispatcher degrades to a logged no-op so local environments
// work without a mail server.
func NewSMTPDispatcher(cfg SMTPConfig, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mailer")
	}
	return &smtpDispatcher{cfg: cfg, logger: l}
}

func (d *smtpDispatcher) Dispatch(ctx context.Context, msg Message) error {
	if msg.To == "" {
		d.logger.Debug("notification skipped, no recipient", zap.String("template", msg.Template))
		return nil
	}

	body, err := Render(msg)
	if err != nil {
		return err
	}

	if d.cfg.Host == "" || d.cfg.Port == "" {
		d.logger.Warn("smtp not configured, dropping notification",
			zap.String("to", msg.To),
			zap.String("template", msg.Template),
		)
		return nil
	}

	auth := sasl.NewPlainClient("", d.cfg.User, d.cfg.Password)
	mime := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	reader := strings.NewReader("From: " + d.cfg.From + "\n" + mime + "\r\n" + body + "\r\n")

	addr := d.cfg.Host + ":" + d.cfg.Port
	if d.cfg.TLSEnabled {
		err = smtp.SendMailTLS(addr, auth, d.cfg.From, []string{msg.To}, reader)
	} else {
		err = smtp.SendMail(addr, auth, d.cfg.From, []string{msg.To}, reader)
	}
	if err != nil {
		d.logger.Error("send mail failed",
			zap.String("to", msg.To),
			zap.String("template", msg.Template),
			zap.Error(err),
		)
		return err
	}

	d.logger.Info("notification delivered",
		zap.String("to", msg.To),
		zap.String("template", msg.Template),
	)
	return nil
}
