package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/gateway/gatewaytest"
	"github.com/justsurfingit/internship-finder/internal/models"
	"github.com/justsurfingit/internship-finder/internal/workflow"
)

type notified struct {
	user *models.User
	app  *models.Application
}

type chanNotifier chan notified

func (c chanNotifier) ApplicationSubmitted(ctx context.Context, user *models.User, app *models.Application) {
	c <- notified{user: user, app: app}
}

type stubDrafter struct {
	letter string
	err    error
}

func (d stubDrafter) DraftCoverLetter(ctx context.Context, company models.Company, opp models.Opportunity, user *models.User) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	return d.letter + " " + opp.Title + " at " + company.Name, nil
}

func newSubmissions(fake *gatewaytest.Fake) (*SubmissionService, chanNotifier) {
	n := make(chanNotifier, 4)
	return NewSubmissionService(fake, workflow.NewRegistry(), n, stubDrafter{letter: "Dear team,"}), n
}

func TestOpenRequiresLogin(t *testing.T) {
	svc, _ := newSubmissions(seededFake())

	_, err := svc.OpenApplication(context.Background(), "c1", "Risk Analyst Intern")
	assert.ErrorIs(t, err, gateway.ErrNotLoggedIn)
	_, err = svc.OpenReview(context.Background(), "c1")
	assert.ErrorIs(t, err, gateway.ErrNotLoggedIn)
	_, err = svc.ReviewOnce(context.Background(), "c1", ReviewForm{Rating: 5, Title: "t", Comment: "c"})
	assert.ErrorIs(t, err, gateway.ErrNotLoggedIn)
}

func TestOpenApplicationChecksTargets(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, _ := newSubmissions(fake)

	_, err := svc.OpenApplication(context.Background(), "missing", "Risk Analyst Intern")
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	_, err = svc.OpenApplication(context.Background(), "c1", "Chief Executive")
	assert.ErrorIs(t, err, ErrOpportunityNotFound)

	view, err := svc.OpenApplication(context.Background(), "c1", "Risk Analyst Intern")
	require.NoError(t, err)
	assert.Equal(t, KindApplication, view.Kind)
	assert.Equal(t, workflow.StateIdle, view.State)
	assert.Equal(t, "Sunrise Bank", view.CompanyName)
	assert.Equal(t, "Risk Analyst Intern", view.InternshipTitle)

	kind, err := svc.Kind(view.ID)
	require.NoError(t, err)
	assert.Equal(t, KindApplication, kind)
}

func TestApplicationWithoutResumeNeverCreates(t *testing.T) {
	fake := seededFake()
	user := studentWithResume()
	user.ResumeURL = nil
	fake.User = user
	svc, notes := newSubmissions(fake)

	view, err := svc.OpenApplication(context.Background(), "c1", "Risk Analyst Intern")
	require.NoError(t, err)

	_, err = svc.SubmitApplication(context.Background(), view.ID, ApplicationForm{CoverLetter: "Hello"})
	require.Error(t, err)
	var we *workflow.Error
	require.ErrorAs(t, err, &we)
	assert.Equal(t, workflow.KindPrecondition, we.Kind)
	assert.Equal(t, ResumeMessage, we.Message)
	assert.Equal(t, []string{"resume_url"}, we.Fields)

	assert.Zero(t, fake.Creates(gateway.EntityApplication))
	assert.Empty(t, notes)
	got, err := svc.View(view.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateIdle, got.State)
	assert.Equal(t, ApplicationForm{CoverLetter: "Hello"}, got.Draft)
}

func TestApplicationSuccess(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, notes := newSubmissions(fake)

	view, err := svc.OpenApplication(context.Background(), "c2", "Social Media Intern")
	require.NoError(t, err)

	app, err := svc.SubmitApplication(context.Background(), view.ID, ApplicationForm{CoverLetter: "  I love the beach.  "})
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, "u1", app.UserID)
	assert.Equal(t, "c2", app.CompanyID)
	assert.Equal(t, "Beach Cafe", app.CompanyName)
	assert.Equal(t, "Social Media Intern", app.InternshipTitle)
	assert.Equal(t, "https://files.example.com/cv.pdf", app.ResumeURL)
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)
	require.NotNil(t, app.CoverLetter)
	assert.Equal(t, "I love the beach.", *app.CoverLetter)

	got, err := svc.View(view.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateSuccess, got.State)
	assert.Equal(t, ApplicationForm{}, got.Draft)

	select {
	case n := <-notes:
		assert.Equal(t, app.ID, n.app.ID)
		assert.Equal(t, "student@example.com", n.user.Email)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
}

func TestApplicationSubmitsOnce(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, notes := newSubmissions(fake)

	view, err := svc.OpenApplication(context.Background(), "c1", "Risk Analyst Intern")
	require.NoError(t, err)
	form := ApplicationForm{CoverLetter: "Please consider me."}

	_, err = svc.SubmitApplication(context.Background(), view.ID, form)
	require.NoError(t, err)
	<-notes

	_, err = svc.SubmitApplication(context.Background(), view.ID, form)
	assert.Equal(t, workflow.KindDone, workflow.KindOf(err))
	assert.Equal(t, 1, fake.Creates(gateway.EntityApplication))
	select {
	case <-notes:
		t.Fatal("notified twice for one application")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestApplicationFailureThenRetry(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	fake.FailNextCreate(gateway.EntityApplication, errors.New("503 from backend"))
	svc, _ := newSubmissions(fake)

	view, err := svc.OpenApplication(context.Background(), "c1", "Risk Analyst Intern")
	require.NoError(t, err)
	form := ApplicationForm{CoverLetter: "Please consider me."}

	_, err = svc.SubmitApplication(context.Background(), view.ID, form)
	assert.Equal(t, workflow.KindRemote, workflow.KindOf(err))
	got, _ := svc.View(view.ID)
	assert.Equal(t, workflow.StateError, got.State)
	assert.Equal(t, form, got.Draft)
	assert.Equal(t, workflow.RemoteMessage, got.Message)

	app, err := svc.SubmitApplication(context.Background(), view.ID, form)
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, 2, fake.Creates(gateway.EntityApplication))
}

func TestReviewPreconditionNamesFields(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, _ := newSubmissions(fake)

	view, err := svc.OpenReview(context.Background(), "c1")
	require.NoError(t, err)

	_, err = svc.SubmitReview(context.Background(), view.ID, ReviewForm{Rating: 0, Title: "", Comment: "valid text"})
	var we *workflow.Error
	require.ErrorAs(t, err, &we)
	assert.Equal(t, workflow.KindPrecondition, we.Kind)
	assert.Equal(t, []string{"rating", "title"}, we.Fields)
	assert.Equal(t, "Please fill out all required fields (missing: rating, title).", we.Message)
	assert.Zero(t, fake.Creates(gateway.EntityReview))

	_, err = svc.SubmitReview(context.Background(), view.ID, ReviewForm{Rating: 6, Title: "t", Comment: "   "})
	require.ErrorAs(t, err, &we)
	assert.Equal(t, []string{"rating", "comment"}, we.Fields)
	assert.Equal(t, "Please fill out all required fields (missing: comment). Please correct: rating must be at most 5.", we.Message)
}

func TestReviewOutOfRangeRatingIsNotMissing(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, _ := newSubmissions(fake)
	view, err := svc.OpenReview(context.Background(), "c1")
	require.NoError(t, err)

	var we *workflow.Error
	_, err = svc.SubmitReview(context.Background(), view.ID, ReviewForm{Rating: 7, Title: "Great", Comment: "Learned a lot"})
	require.ErrorAs(t, err, &we)
	assert.Equal(t, workflow.KindPrecondition, we.Kind)
	assert.Equal(t, []string{"rating"}, we.Fields)
	assert.Equal(t, "Please correct: rating must be at most 5.", we.Message)
	assert.NotContains(t, we.Message, "missing")

	_, err = svc.SubmitReview(context.Background(), view.ID, ReviewForm{Rating: -2, Title: "Great", Comment: "Learned a lot"})
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "Please correct: rating must be at least 1.", we.Message)
	assert.Zero(t, fake.Creates(gateway.EntityReview))
}

func TestReviewSuccess(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, _ := newSubmissions(fake)

	view, err := svc.OpenReview(context.Background(), "c1")
	require.NoError(t, err)

	review, err := svc.SubmitReview(context.Background(), view.ID, ReviewForm{
		Rating: 4, Title: "Good summer", Comment: "Friendly team", InternshipPosition: "Risk Analyst Intern",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam Student", review.UserName)
	assert.Equal(t, "c1", review.CompanyID)
	require.NotNil(t, review.InternshipPosition)

	var stored []models.Review
	require.NoError(t, fake.Filter(context.Background(), gateway.EntityReview, gateway.Criteria{"company_id": "c1"}, &stored))
	assert.Len(t, stored, 1)
}

func TestReviewOnce(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, _ := newSubmissions(fake)

	_, err := svc.ReviewOnce(context.Background(), "c2", ReviewForm{Title: "x", Comment: "y"})
	assert.Equal(t, workflow.KindPrecondition, workflow.KindOf(err))

	review, err := svc.ReviewOnce(context.Background(), "c2", ReviewForm{Rating: 2, Title: "x", Comment: "y"})
	require.NoError(t, err)
	assert.Nil(t, review.InternshipPosition)
	assert.Zero(t, svc.Sessions.Len(), "one-shot reviews do not leave sessions behind")
}

func TestSessionBelongsToOpener(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, _ := newSubmissions(fake)

	view, err := svc.OpenApplication(context.Background(), "c1", "Risk Analyst Intern")
	require.NoError(t, err)

	other := studentWithResume()
	other.ID = "u2"
	fake.User = other
	_, err = svc.SubmitApplication(context.Background(), view.ID, ApplicationForm{})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	fake.User = nil
	_, err = svc.SubmitApplication(context.Background(), view.ID, ApplicationForm{})
	assert.ErrorIs(t, err, gateway.ErrNotLoggedIn)
}

func TestWrongKindAndUnknownSession(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, _ := newSubmissions(fake)

	view, err := svc.OpenReview(context.Background(), "c1")
	require.NoError(t, err)
	_, err = svc.SubmitApplication(context.Background(), view.ID, ApplicationForm{})
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = svc.DraftCoverLetter(context.Background(), view.ID)
	assert.ErrorIs(t, err, ErrWrongKind)

	_, err = svc.SubmitReview(context.Background(), "nope", ReviewForm{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.View("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Close("nope"), ErrSessionNotFound)
}

func TestCloseCancelsInFlightApplication(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	started := make(chan struct{})
	fake.BeforeCreate = func(ctx context.Context, entity gateway.Entity) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}
	svc, notes := newSubmissions(fake)

	view, err := svc.OpenApplication(context.Background(), "c1", "Risk Analyst Intern")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SubmitApplication(context.Background(), view.ID, ApplicationForm{})
		done <- err
	}()
	<-started

	require.NoError(t, svc.Close(view.ID))
	select {
	case err := <-done:
		assert.Equal(t, workflow.KindClosed, workflow.KindOf(err))
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight create was not cancelled")
	}
	assert.Empty(t, notes)
	_, err = svc.View(view.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDraftCoverLetter(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc, _ := newSubmissions(fake)

	view, err := svc.OpenApplication(context.Background(), "c1", "Risk Analyst Intern")
	require.NoError(t, err)

	letter, err := svc.DraftCoverLetter(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dear team, Risk Analyst Intern at Sunrise Bank", letter)

	svc.Drafter = nil
	_, err = svc.DraftCoverLetter(context.Background(), view.ID)
	assert.ErrorIs(t, err, ErrLLMDisabled)
}
