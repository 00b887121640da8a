package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Profile status is the single authoritative visibility field. The CV's
// editability is derived from it, never stored, so the two can't drift apart.
const (
	ProfileStatusDraft     = "draft"
	ProfileStatusPublished = "published"
)

// CV section types. The set is closed: an unrecognized type is a hard error,
// not stored.
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionLanguages      = "languages"
	SectionCertifications = "certifications"
	SectionProjects       = "projects"
	SectionPublications   = "publications"
)

// SectionRank fixes the display order of sections. Order is stored explicitly
// per section row at write time, not inferred from write order.
var SectionRank = map[string]int{
	SectionSummary:        1,
	SectionExperience:     2,
	SectionEducation:      3,
	SectionSkills:         4,
	SectionLanguages:      5,
	SectionCertifications: 6,
	SectionProjects:       7,
	SectionPublications:   8,
}

// ErrCVLocked is returned by the repository when a section write hits a CV
// whose owning profile is published. The check is part of the conditional
// UPDATE itself so concurrent publishes can't slip a write through.
var ErrCVLocked = errors.New("cv is locked while profile is published")

// JobSeekerProfile holds the jobseeker's display fields plus two private
// fields: Age is used for search filtering only and Phone is disclosed to an
// employer only through an accepted interview request. Neither is ever
// serialized.
type JobSeekerProfile struct {
	ID              int64     `json:"id"`
	AccountID       string    `json:"account_id"`
	FullName        string    `json:"full_name" validate:"required,min=2,max=100,valid_name"`
	City            string    `json:"city" validate:"max=100"`
	DesiredRole     string    `json:"desired_role" validate:"max=100"`
	Bio             string    `json:"bio" validate:"max=500"`
	YearsExperience int       `json:"years_experience" validate:"min=0,max=60"`
	Age             int       `json:"-" validate:"omitempty,min=16,max=100"`
	Phone           string    `json:"-" validate:"omitempty,valid_phone"`
	Status          string    `json:"status"`
	Completeness    int       `json:"profile_completeness"`
	// Skills is denormalized from the CV's skills section at write time so
	// search can filter on it without loading the CV
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsVisible reports whether the profile is publicly discoverable
func (p *JobSeekerProfile) IsVisible() bool {
	return p.Status == ProfileStatusPublished
}

// CVDocument is owned 1:1 by a profile. Version is a monotonic marker used to
// identify snapshots; it is not a concurrency-control token.
type CVDocument struct {
	ID        int64       `json:"id"`
	ProfileID int64       `json:"profile_id"`
	Version   int64       `json:"version"`
	Locked    bool        `json:"is_locked"`
	Sections  []CVSection `json:"sections"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CVSection holds one typed content payload. One row per type per CV.
type CVSection struct {
	ID        int64           `json:"id"`
	CVID      int64           `json:"cv_id"`
	Type      string          `json:"type"`
	Position  int             `json:"position"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SectionInput is one section write as submitted by the owner
type SectionInput struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// Typed section payloads. Writes are decoded strictly into the struct for
// their declared type and validated before anything is stored.

type SummaryContent struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type ExperienceEntry struct {
	Company     string  `json:"company" validate:"required,max=150"`
	Title       string  `json:"title" validate:"required,max=150"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     *string `json:"end_date,omitempty"`
	Description string  `json:"description" validate:"max=2000"`
}

type ExperienceContent struct {
	Entries []ExperienceEntry `json:"entries" validate:"required,min=1,dive"`
}

type EducationEntry struct {
	School    string `json:"school" validate:"required,max=150"`
	Degree    string `json:"degree" validate:"required,max=100"`
	Field     string `json:"field" validate:"max=100"`
	StartYear int    `json:"start_year" validate:"omitempty,min=1950"`
	EndYear   int    `json:"end_year" validate:"omitempty,min=1950"`
}

type EducationContent struct {
	Entries []EducationEntry `json:"entries" validate:"required,min=1,dive"`
}

type SkillsContent struct {
	Skills []string `json:"skills" validate:"required,min=1,dive,required,max=80"`
}

type LanguageEntry struct {
	Name  string `json:"name" validate:"required,max=60"`
	Level string `json:"level" validate:"required,oneof=basic conversational fluent native"`
}

type LanguagesContent struct {
	Entries []LanguageEntry `json:"entries" validate:"required,min=1,dive"`
}

type CertificationEntry struct {
	Name   string `json:"name" validate:"required,max=150"`
	Issuer string `json:"issuer" validate:"max=150"`
	Year   int    `json:"year" validate:"omitempty,min=1950"`
}

type CertificationsContent struct {
	Entries []CertificationEntry `json:"entries" validate:"required,min=1,dive"`
}

type ProjectEntry struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description" validate:"max=2000"`
	URL         string `json:"url" validate:"omitempty,url"`
}

type ProjectsContent struct {
	Entries []ProjectEntry `json:"entries" validate:"required,min=1,dive"`
}

type PublicationEntry struct {
	Title string `json:"title" validate:"required,max=300"`
	Venue string `json:"venue" validate:"max=150"`
	Year  int    `json:"year" validate:"omitempty,min=1950"`
	URL   string `json:"url" validate:"omitempty,url"`
}

type PublicationsContent struct {
	Entries []PublicationEntry `json:"entries" validate:"required,min=1,dive"`
}

// SearchFilter narrows the published-profile search. Age bounds filter on the
// private age field; results never include it.
type SearchFilter struct {
	City     string   `form:"city" validate:"max=100"`
	Role     string   `form:"role" validate:"max=100"`
	MinYears int      `form:"min_years" validate:"min=0"`
	Skills   []string `form:"skill" validate:"max=10,dive,max=80"`
	MinAge   int      `form:"min_age" validate:"omitempty,min=16"`
	MaxAge   int      `form:"max_age" validate:"omitempty,min=16"`
	Page     int      `form:"page"`
	Limit    int      `form:"limit"`
}

type JobSeekerRepository interface {
	GetByAccountID(ctx context.Context, accountID string) (*JobSeekerProfile, error)
	GetByID(ctx context.Context, id int64) (*JobSeekerProfile, error)
	Create(ctx context.Context, profile *JobSeekerProfile) error
	UpdateDisplay(ctx context.Context, profile *JobSeekerProfile) error
	SetStatus(ctx context.Context, profileID int64, status string) error
	GetCV(ctx context.Context, profileID int64) (*CVDocument, error)
	GetCVByID(ctx context.Context, cvID int64) (*CVDocument, error)
	// WriteSections upserts the given sections and bumps the CV version by
	// exactly one, all in one transaction conditioned on the profile being in
	// draft. Returns ErrCVLocked when the condition fails.
	WriteSections(ctx context.Context, cvID int64, sections []CVSection) (int64, error)
	DeleteSection(ctx context.Context, cvID int64, sectionType string) (int64, error)
	Search(ctx context.Context, filter SearchFilter) ([]JobSeekerProfile, int64, error)
}

type JobSeekerUsecase interface {
	GetMyProfile(ctx context.Context) (*JobSeekerProfile, error)
	UpdateMyProfile(ctx context.Context, profile *JobSeekerProfile) (*JobSeekerProfile, error)
	SetVisibility(ctx context.Context, visible bool) (*JobSeekerProfile, error)
	GetMyCV(ctx context.Context) (*CVDocument, error)
	WriteSection(ctx context.Context, input SectionInput) (*CVDocument, error)
	WriteSections(ctx context.Context, inputs []SectionInput) (*CVDocument, error)
	DeleteSection(ctx context.Context, sectionType string) (*CVDocument, error)
}
