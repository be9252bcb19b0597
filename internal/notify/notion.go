package notify

import (
	"context"
	"errors"

	gnt "github.com/dstotijn/go-notion"

	"github.com/justsurfingit/internship-finder/internal/models"
)

// NotionSender mirrors each application as a row on a Notion board.
// The database needs the properties Position (title), Company, Applicant,
// Cover Letter (rich text) and Status (select).
type NotionSender struct {
	api        *gnt.Client
	databaseID string
}

func NewNotionSender(token, databaseID string, opts ...gnt.ClientOption) *NotionSender {
	return &NotionSender{api: gnt.NewClient(token, opts...), databaseID: databaseID}
}

func (n *NotionSender) Name() string { return "notion" }

func (n *NotionSender) Send(ctx context.Context, msg Message) error {
	if msg.Application == nil {
		return errors.New("notion board only tracks applications")
	}
	props := applicationProperties(msg.Application, msg.To)
	_, err := n.api.CreatePage(ctx, gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               n.databaseID,
		DatabasePageProperties: &props,
	})
	return err
}

func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{{Text: &gnt.Text{Content: s}}}
}

func applicationProperties(app *models.Application, applicant string) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{
		"Position": gnt.DatabasePageProperty{Title: richText(app.InternshipTitle)},
	}
	if app.CompanyName != "" {
		props["Company"] = gnt.DatabasePageProperty{RichText: richText(app.CompanyName)}
	}
	if applicant != "" {
		props["Applicant"] = gnt.DatabasePageProperty{RichText: richText(applicant)}
	}
	if app.CoverLetter != nil && *app.CoverLetter != "" {
		props["Cover Letter"] = gnt.DatabasePageProperty{RichText: richText(truncate(*app.CoverLetter, 2000))}
	}
	if app.Status != "" {
		props["Status"] = gnt.DatabasePageProperty{Select: &gnt.SelectOptions{Name: string(app.Status)}}
	}
	return props
}

// Notion caps a rich text block at 2000 characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
