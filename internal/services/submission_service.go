package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
	"github.com/justsurfingit/internship-finder/internal/workflow"
)

var (
	ErrSessionNotFound     = errors.New("submission not found")
	ErrOpportunityNotFound = errors.New("internship not found")
	ErrWrongKind           = errors.New("submission is of a different kind")
)

const (
	KindApplication = "application"
	KindReview      = "review"
)

// ResumeMessage is the precondition shown to users without a resume.
const ResumeMessage = "Please upload a resume to your profile before applying."

// ApplicationForm is what the student edits in the apply dialog.
type ApplicationForm struct {
	CoverLetter string `json:"cover_letter"`
}

// ReviewForm is what the student edits in the review dialog.
type ReviewForm struct {
	Rating             int    `json:"rating" validate:"required,min=1,max=5"`
	Title              string `json:"title" validate:"required"`
	Comment            string `json:"comment" validate:"required"`
	InternshipPosition string `json:"internship_position,omitempty"`
}

// applicationDraft carries the acting user next to the form so the guard
// sees the profile as of the submit.
type applicationDraft struct {
	ApplicationForm
	user *models.User
}

type reviewDraft struct {
	ReviewForm
	user *models.User
}

// Notifier is told about every created application.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, user *models.User, app *models.Application)
}

// CoverLetterDrafter writes a first draft for an application.
type CoverLetterDrafter interface {
	DraftCoverLetter(ctx context.Context, company models.Company, opp models.Opportunity, user *models.User) (string, error)
}

type ApplicationSession struct {
	*workflow.Workflow[applicationDraft, *models.Application]
	Company     models.Company
	Opportunity models.Opportunity
	UserID      string
}

type ReviewSession struct {
	*workflow.Workflow[reviewDraft, *models.Review]
	Company models.Company
	UserID  string
}

// SessionView is the client-facing state of an open submission.
type SessionView struct {
	ID              string         `json:"id"`
	Kind            string         `json:"kind"`
	CompanyID       string         `json:"company_id"`
	CompanyName     string         `json:"company_name"`
	InternshipTitle string         `json:"internship_title,omitempty"`
	State           workflow.State `json:"state"`
	Draft           any            `json:"draft"`
	Message         string         `json:"message,omitempty"`
}

type SubmissionService struct {
	Gateway  gateway.Gateway
	Sessions *workflow.Registry
	Notifier Notifier
	Drafter  CoverLetterDrafter

	validate *validator.Validate
}

func NewSubmissionService(g gateway.Gateway, sessions *workflow.Registry, n Notifier, d CoverLetterDrafter) *SubmissionService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so messages match the form fields.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &SubmissionService{Gateway: g, Sessions: sessions, Notifier: n, Drafter: d, validate: v}
}

// currentUser requires a signed-in user.
func (s *SubmissionService) currentUser(ctx context.Context) (*models.User, error) {
	user, err := gateway.ResolveUser(ctx, s.Gateway)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, gateway.ErrNotLoggedIn
	}
	return user, nil
}

// OpenApplication starts an apply dialog for one internship of a company.
func (s *SubmissionService) OpenApplication(ctx context.Context, companyID, title string) (*SessionView, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	company, err := gateway.FindCompany(ctx, s.Gateway, companyID)
	if err != nil {
		return nil, err
	}
	opp, ok := company.Opportunity(title)
	if !ok {
		return nil, fmt.Errorf("%q at %s: %w", title, company.Name, ErrOpportunityNotFound)
	}

	sess := &ApplicationSession{Company: *company, Opportunity: opp, UserID: user.ID}
	sess.Workflow = workflow.New[applicationDraft, *models.Application](
		fmt.Sprintf("application %s/%s", company.Name, opp.Title),
		applicationGuard,
		s.createApplication(sess),
	)
	id := s.Sessions.Open(sess)
	log.Printf("[Submission %s] 🆕 application opened for %s at %s", id, opp.Title, company.Name)
	return s.view(id, sess), nil
}

// OpenReview starts a review dialog for a company.
func (s *SubmissionService) OpenReview(ctx context.Context, companyID string) (*SessionView, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	company, err := gateway.FindCompany(ctx, s.Gateway, companyID)
	if err != nil {
		return nil, err
	}
	sess := s.newReviewSession(*company, user)
	id := s.Sessions.Open(sess)
	log.Printf("[Submission %s] 🆕 review opened for %s", id, company.Name)
	return s.view(id, sess), nil
}

func (s *SubmissionService) newReviewSession(company models.Company, user *models.User) *ReviewSession {
	sess := &ReviewSession{Company: company, UserID: user.ID}
	sess.Workflow = workflow.New[reviewDraft, *models.Review]("review "+company.Name, s.reviewGuard, s.createReview(sess))
	return sess
}

// Kind reports whether id is an application or a review session.
func (s *SubmissionService) Kind(id string) (string, error) {
	sess, ok := s.Sessions.Get(id)
	if !ok {
		return "", ErrSessionNotFound
	}
	switch sess.(type) {
	case *ApplicationSession:
		return KindApplication, nil
	case *ReviewSession:
		return KindReview, nil
	}
	return "", ErrSessionNotFound
}

func (s *SubmissionService) View(id string) (*SessionView, error) {
	sess, ok := s.Sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.view(id, sess), nil
}

func (s *SubmissionService) view(id string, sess workflow.Session) *SessionView {
	v := &SessionView{ID: id}
	switch t := sess.(type) {
	case *ApplicationSession:
		snap := t.Snapshot()
		v.Kind = KindApplication
		v.CompanyID, v.CompanyName = t.Company.ID, t.Company.Name
		v.InternshipTitle = t.Opportunity.Title
		v.State, v.Draft, v.Message = snap.State, snap.Draft.ApplicationForm, snap.Message
	case *ReviewSession:
		snap := t.Snapshot()
		v.Kind = KindReview
		v.CompanyID, v.CompanyName = t.Company.ID, t.Company.Name
		v.State, v.Draft, v.Message = snap.State, snap.Draft.ReviewForm, snap.Message
	}
	return v
}

// sessionUser re-reads the signed-in user and checks it owns the session.
func (s *SubmissionService) sessionUser(ctx context.Context, ownerID string) (*models.User, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.ID != ownerID {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

func (s *SubmissionService) SubmitApplication(ctx context.Context, id string, form ApplicationForm) (*models.Application, error) {
	raw, ok := s.Sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess, ok := raw.(*ApplicationSession)
	if !ok {
		return nil, ErrWrongKind
	}
	user, err := s.sessionUser(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	app, err := sess.Submit(ctx, applicationDraft{ApplicationForm: form, user: user})
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil {
		go s.Notifier.ApplicationSubmitted(context.WithoutCancel(ctx), user, app)
	}
	return app, nil
}

func (s *SubmissionService) SubmitReview(ctx context.Context, id string, form ReviewForm) (*models.Review, error) {
	raw, ok := s.Sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess, ok := raw.(*ReviewSession)
	if !ok {
		return nil, ErrWrongKind
	}
	user, err := s.sessionUser(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return sess.Submit(ctx, reviewDraft{ReviewForm: form, user: user})
}

// ReviewOnce runs a whole review workflow for a single request.
func (s *SubmissionService) ReviewOnce(ctx context.Context, companyID string, form ReviewForm) (*models.Review, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	company, err := gateway.FindCompany(ctx, s.Gateway, companyID)
	if err != nil {
		return nil, err
	}
	sess := s.newReviewSession(*company, user)
	defer sess.Close()
	return sess.Submit(ctx, reviewDraft{ReviewForm: form, user: user})
}

// Close discards a session, cancelling any create in flight.
func (s *SubmissionService) Close(id string) error {
	if !s.Sessions.Close(id) {
		return ErrSessionNotFound
	}
	log.Printf("[Submission %s] 🗑️  closed", id)
	return nil
}

// DraftCoverLetter asks the LLM for a cover letter for an open application.
func (s *SubmissionService) DraftCoverLetter(ctx context.Context, id string) (string, error) {
	raw, ok := s.Sessions.Get(id)
	if !ok {
		return "", ErrSessionNotFound
	}
	sess, ok := raw.(*ApplicationSession)
	if !ok {
		return "", ErrWrongKind
	}
	user, err := s.sessionUser(ctx, sess.UserID)
	if err != nil {
		return "", err
	}
	if s.Drafter == nil {
		return "", ErrLLMDisabled
	}
	return s.Drafter.DraftCoverLetter(ctx, sess.Company, sess.Opportunity, user)
}

func applicationGuard(d applicationDraft) error {
	if !d.user.HasResume() {
		return workflow.Precondition(ResumeMessage, "resume_url")
	}
	return nil
}

func (s *SubmissionService) reviewGuard(d reviewDraft) error {
	form := d.ReviewForm
	form.Title = strings.TrimSpace(form.Title)
	form.Comment = strings.TrimSpace(form.Comment)

	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var missing, invalid []string
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "min":
			invalid = append(invalid, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			invalid = append(invalid, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			invalid = append(invalid, fe.Field()+" is not valid")
		}
	}
	if len(invalid) == 0 {
		return workflow.MissingFields(fields...)
	}
	msg := "Please correct: " + strings.Join(invalid, "; ") + "."
	if len(missing) > 0 {
		msg = workflow.MissingFields(missing...).Message + " " + msg
	}
	return workflow.Precondition(msg, fields...)
}

func (s *SubmissionService) createApplication(sess *ApplicationSession) workflow.CreateFunc[applicationDraft, *models.Application] {
	return func(ctx context.Context, d applicationDraft) (*models.Application, error) {
		app := &models.Application{
			UserID:          d.user.ID,
			CompanyID:       sess.Company.ID,
			CompanyName:     sess.Company.Name,
			InternshipTitle: sess.Opportunity.Title,
			ResumeURL:       *d.user.ResumeURL,
			Status:          models.ApplicationStatusApplied,
		}
		if letter := strings.TrimSpace(d.CoverLetter); letter != "" {
			app.CoverLetter = &letter
		}
		if err := s.Gateway.Create(ctx, gateway.EntityApplication, app); err != nil {
			return nil, err
		}
		return app, nil
	}
}

func (s *SubmissionService) createReview(sess *ReviewSession) workflow.CreateFunc[reviewDraft, *models.Review] {
	return func(ctx context.Context, d reviewDraft) (*models.Review, error) {
		review := &models.Review{
			CompanyID: sess.Company.ID,
			UserName:  d.user.DisplayName(),
			Rating:    d.Rating,
			Title:     strings.TrimSpace(d.Title),
			Comment:   strings.TrimSpace(d.Comment),
		}
		if pos := strings.TrimSpace(d.InternshipPosition); pos != "" {
			review.InternshipPosition = &pos
		}
		if err := s.Gateway.Create(ctx, gateway.EntityReview, review); err != nil {
			return nil, err
		}
		return review, nil
	}
}
