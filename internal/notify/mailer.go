package notify

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/ignatzorin/hvacsite/internal/goroutine"
	"github.com/ignatzorin/hvacsite/internal/logger"
	"github.com/ignatzorin/hvacsite/internal/service"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer пишет отделу продаж о новых запросах КП и откликах.
// Отправка асинхронная и не влияет на ответ посетителю.
type Mailer struct {
	dialer dialer
	from   string
	to     string
	goFn   func(func())
}

// NewMailer создаёт отправителя через SMTP.
func NewMailer(host string, port int, user, password, from, to string) *Mailer {
	return newMailer(gomail.NewDialer(host, port, user, password), from, to, goroutine.SafeGo)
}

func newMailer(d dialer, from, to string, goFn func(func())) *Mailer {
	return &Mailer{dialer: d, from: from, to: to, goFn: goFn}
}

// PublishSubmission отправляет письмо для запросов КП и откликов, остальные виды пропускает.
func (m *Mailer) PublishSubmission(evt service.SubmissionEvent) {
	if evt.Kind != service.KindQuote && evt.Kind != service.KindApplication {
		return
	}
	msg := m.message(evt)
	m.goFn(func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			logger.Component("mailer").
				WithError(err).
				WithField("kind", evt.Kind).
				WithField("id", evt.ID.String()).
				Warn("не удалось отправить письмо отделу продаж")
		}
	})
}

func (m *Mailer) message(evt service.SubmissionEvent) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	if evt.Email != "" {
		msg.SetHeader("Reply-To", evt.Email)
	}
	msg.SetHeader("Subject", subject(evt))

	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\n", evt.Name)
	fmt.Fprintf(&body, "Email: %s\n", evt.Email)
	fmt.Fprintf(&body, "Details: %s\n", evt.Summary)
	fmt.Fprintf(&body, "ID: %s\n", evt.ID)
	fmt.Fprintf(&body, "Received: %s\n", evt.CreatedAt.Format("2006-01-02 15:04 MST"))
	msg.SetBody("text/plain", body.String())
	return msg
}

func subject(evt service.SubmissionEvent) string {
	switch evt.Kind {
	case service.KindQuote:
		return "New quote request from " + evt.Name
	case service.KindApplication:
		return "New job application from " + evt.Name
	default:
		return "New submission from " + evt.Name
	}
}

// Fanout передаёт событие нескольким получателям по порядку.
type Fanout []service.SubmissionPublisher

func (f Fanout) PublishSubmission(evt service.SubmissionEvent) {
	for _, p := range f {
		if p != nil {
			p.PublishSubmission(evt)
		}
	}
}
