package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Column names and JSON keys are kept identical so the same structs decode
// rows coming back from the hosted backend.
type Base struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date"`
	UpdatedDate time.Time `gorm:"autoUpdateTime" json:"updated_date"`
}

// BeforeCreate assigns a uuid when the caller did not pick an id.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Stamp fills the id and timestamps for backends that do not run gorm hooks.
func (b *Base) Stamp(now time.Time) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedDate.IsZero() {
		b.CreatedDate = now
	}
	b.UpdatedDate = now
}

type Opportunity struct {
	Title          string   `json:"title"`
	Department     string   `json:"department"`
	Duration       *string  `json:"duration,omitempty"`
	Description    *string  `json:"description,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	Requirements   *string  `json:"requirements,omitempty"`
}

type Company struct {
	Base

	Name        string `gorm:"not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Industry    string `gorm:"index" json:"industry"`
	Location    string `gorm:"index" json:"location"`
	CompanySize string `json:"company_size"`
	IsFeatured  bool   `gorm:"default:false" json:"is_featured"`

	// Stored as a JSON document; opportunities are not separate rows.
	InternshipOpportunities []Opportunity `gorm:"serializer:json;type:text" json:"internship_opportunities"`

	ContactEmail    *string  `json:"contact_email,omitempty"`
	ContactPhone    *string  `json:"contact_phone,omitempty"`
	Website         *string  `json:"website,omitempty"`
	EstablishedYear *int     `json:"established_year,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

// Opportunity returns the opening with the given title.
func (c Company) Opportunity(title string) (Opportunity, bool) {
	for _, o := range c.InternshipOpportunities {
		if o.Title == title {
			return o, true
		}
	}
	return Opportunity{}, false
}

type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "Applied"
	ApplicationStatusReviewing   ApplicationStatus = "Reviewing"
	ApplicationStatusInterviewed ApplicationStatus = "Interviewed"
	ApplicationStatusOffered     ApplicationStatus = "Offered"
	ApplicationStatusRejected    ApplicationStatus = "Rejected"
)

type Application struct {
	Base

	UserID          string            `gorm:"index;not null" json:"user_id"`
	CompanyID       string            `gorm:"index;not null" json:"company_id"`
	CompanyName     string            `json:"company_name"`
	InternshipTitle string            `gorm:"not null" json:"internship_title"`
	CoverLetter     *string           `gorm:"type:text" json:"cover_letter,omitempty"`
	ResumeURL       string            `gorm:"not null" json:"resume_url"`
	Status          ApplicationStatus `gorm:"default:'Applied'" json:"status"`
}

type Review struct {
	Base

	CompanyID          string  `gorm:"index;not null" json:"company_id"`
	UserName           string  `json:"user_name"`
	Rating             int     `gorm:"not null" json:"rating"`
	Title              string  `json:"title"`
	Comment            string  `gorm:"type:text" json:"comment"`
	InternshipPosition *string `json:"internship_position,omitempty"`
}

type Mentor struct {
	Base

	Name            string         `gorm:"not null" json:"name"`
	Title           string         `json:"title"`
	Company         string         `json:"company"`
	Industry        string         `gorm:"index" json:"industry"`
	Bio             string         `gorm:"type:text" json:"bio"`
	Expertise       pq.StringArray `gorm:"type:text" json:"expertise"`
	YearsExperience *int           `json:"years_experience,omitempty"`
	Available       bool           `json:"available"`
	ContactEmail    *string        `json:"contact_email,omitempty"`
	LinkedinURL     *string        `json:"linkedin_url,omitempty"`
	ProfileImage    *string        `json:"profile_image,omitempty"`
}

type SuccessStory struct {
	Base

	StudentName     string         `gorm:"not null" json:"student_name"`
	Title           string         `json:"title"`
	Content         string         `gorm:"type:text" json:"content"`
	CompanyName     string         `json:"company_name"`
	Position        string         `json:"position"`
	CurrentRole     *string        `json:"current_role,omitempty"`
	CurrentCompany  *string        `json:"current_company,omitempty"`
	FieldOfStudy    *string        `json:"field_of_study,omitempty"`
	GraduationYear  *int           `json:"graduation_year,omitempty"`
	KeyAchievements pq.StringArray `gorm:"type:text" json:"key_achievements"`
	Advice          *string        `gorm:"type:text" json:"advice,omitempty"`
	ImageURL        *string        `json:"image_url,omitempty"`
	IsFeatured      bool           `gorm:"default:false" json:"is_featured"`
}

type Resource struct {
	Base

	Title    string  `gorm:"not null" json:"title"`
	Category string  `gorm:"index" json:"category"`
	Author   string  `json:"author"`
	Excerpt  string  `json:"excerpt"`
	Content  string  `gorm:"type:text" json:"content"`
	ImageURL *string `json:"image_url,omitempty"`
}

type Notification struct {
	Base

	UserID  string `gorm:"index;not null" json:"user_id"`
	Title   string `json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Link    string `json:"link,omitempty"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
}

type Interview struct {
	Base

	UserID        string    `gorm:"index;not null" json:"user_id"`
	ApplicationID string    `gorm:"index" json:"application_id"`
	CompanyName   string    `json:"company_name"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Location      *string   `json:"location,omitempty"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
}

type User struct {
	Base

	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	FullName       *string        `json:"full_name,omitempty"`
	ResumeURL      *string        `json:"resume_url,omitempty"`
	SavedCompanies pq.StringArray `gorm:"type:text" json:"saved_companies"`

	// Bearer token issued by the login flow; never serialised.
	SessionToken string `gorm:"index" json:"-"`
}

// HasResume reports whether a resume reference is on file.
func (u *User) HasResume() bool {
	return u != nil && u.ResumeURL != nil && strings.TrimSpace(*u.ResumeURL) != ""
}

// DisplayName is the name shown on reviews: full name, falling back to email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != nil && strings.TrimSpace(*u.FullName) != "" {
		return *u.FullName
	}
	return u.Email
}

// All lists every model for migrations.
func All() []any {
	return []any{
		&Company{}, &Application{}, &Review{}, &Mentor{}, &SuccessStory{},
		&Resource{}, &Notification{}, &Interview{}, &User{},
	}
}
