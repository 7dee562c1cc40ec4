package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const defaultSendTimeout = 15 * time.Second

// Sender delivers EmailJobs through Mailgun.
type Sender struct {
	client  *mg.MailgunImpl
	from    string
	timeout time.Duration
}

func NewSender(domain, apiKey, from string, timeout time.Duration) *Sender {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Sender{client: mg.NewMailgun(domain, apiKey), from: from, timeout: timeout}
}

// Send delivers one job. The HTML body is optional.
func (s *Sender) Send(ctx context.Context, job EmailJob) error {
	msg := s.client.NewMessage(s.from, job.Subject, job.Text, job.To)
	if job.HTML != "" {
		msg.SetHtml(job.HTML)
	}
	c, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, _, err := s.client.Send(c, msg)
	return err
}
