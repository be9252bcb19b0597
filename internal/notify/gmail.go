package notify

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

// GmailSender mails the student from the authorised account.
type GmailSender struct {
	svc  *gmail.Service
	from string

	attempts int
	backoff  time.Duration
}

func NewGmailSender(svc *gmail.Service, from string) *GmailSender {
	return &GmailSender{svc: svc, from: from, attempts: 3, backoff: time.Second}
}

func (s *GmailSender) Name() string { return "gmail" }

func (s *GmailSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("no recipient address")
	}
	raw := base64.URLEncoding.EncodeToString(rfc822(s.from, msg))
	return retry(ctx, s.attempts, s.backoff, func() error {
		_, err := s.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
		return err
	})
}

func rfc822(from string, msg Message) []byte {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.Body)
	if msg.Link != "" {
		b.WriteString("\r\n\r\n" + msg.Link)
	}
	return []byte(b.String())
}

// retry backs off exponentially. Client errors fail fast.
func retry(ctx context.Context, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if !retryable(err) || i == attempts-1 {
			break
		}
		log.Printf("⚠️ API Error: %v. Retrying in %v...", err, sleep)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return err
}

func retryable(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == http.StatusTooManyRequests || gErr.Code >= 500
	}
	return true
}
