// Package notify tells students about their submissions: an in-app
// Notification record plus any configured outbound channels.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
)

// Message is one outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
	Link    string

	Application *models.Application
}

type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Notifier fans a submission out to every sender. Failures are logged and
// never returned; the submission already succeeded.
type Notifier struct {
	Gateway gateway.Gateway
	Senders []Sender
}

func NewNotifier(g gateway.Gateway, senders ...Sender) *Notifier {
	return &Notifier{Gateway: g, Senders: senders}
}

// ApplicationSubmitted records the in-app notification and sends the rest.
func (n *Notifier) ApplicationSubmitted(ctx context.Context, user *models.User, app *models.Application) {
	msg := Message{
		Subject:     fmt.Sprintf("Application submitted: %s at %s", app.InternshipTitle, app.CompanyName),
		Body:        fmt.Sprintf("Your application for %s at %s was submitted. Status: %s.", app.InternshipTitle, app.CompanyName, app.Status),
		Link:        "/companies/" + app.CompanyID,
		Application: app,
	}
	if user != nil {
		msg.To = user.Email
	}

	if n.Gateway != nil && user != nil {
		note := &models.Notification{
			UserID:  user.ID,
			Title:   "Application submitted",
			Message: msg.Body,
			Link:    msg.Link,
		}
		if err := n.Gateway.Create(ctx, gateway.EntityNotification, note); err != nil {
			log.Printf("[Notify] ⚠️ could not record notification for %s: %v", user.ID, err)
		}
	}

	for _, s := range n.Senders {
		if err := s.Send(ctx, msg); err != nil {
			log.Printf("[Notify] ❌ %s: %v", s.Name(), err)
			continue
		}
		log.Printf("[Notify] ✅ %s sent", s.Name())
	}
}
