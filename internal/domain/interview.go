package domain

import (
	"context"
	"errors"
	"time"
)

// Interview request status constants
const (
	InterviewStatusPending   = "pending"
	InterviewStatusAccepted  = "accepted"
	InterviewStatusDeclined  = "declined"
	InterviewStatusCancelled = "cancelled"
	InterviewStatusCompleted = "completed"
)

// Interview type constants
const (
	InterviewTypeInPerson = "in_person"
	InterviewTypeVideo    = "video"
	InterviewTypePhone    = "phone"
)

// Response decisions
const (
	InterviewDecisionAccept  = "accept"
	InterviewDecisionDecline = "decline"
)

// ErrDuplicateInterview is returned by the repository when the partial unique
// index rejects a second in-flight request for the same pair.
var ErrDuplicateInterview = errors.New("an interview request for this pair is already in flight")

// InterviewTerminal reports whether no further lifecycle transition is
// defined for the status. Terminal requests may be deleted by the employer;
// declined, cancelled and completed are treated uniformly.
func InterviewTerminal(status string) bool {
	switch status {
	case InterviewStatusDeclined, InterviewStatusCancelled, InterviewStatusCompleted:
		return true
	}
	return false
}

// ContactDisclosed reports whether the jobseeker's phone number is visible to
// the employer. Disclosure switches on when a request is accepted and never
// switches back off; completed keeps it.
func ContactDisclosed(status string) bool {
	return status == InterviewStatusAccepted || status == InterviewStatusCompleted
}

type InterviewRequest struct {
	ID              int64      `json:"id"`
	EmployerID      int64      `json:"employer_id"`
	JobseekerID     int64      `json:"jobseeker_id"`
	Status          string     `json:"status"`
	ProposedDate    time.Time  `json:"proposed_date"`
	Location        string     `json:"location"`
	InterviewType   string     `json:"interview_type"`
	Message         string     `json:"message"`
	ResponseMessage *string    `json:"response_message,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// InterviewDetails is the employer's input when opening a request
type InterviewDetails struct {
	JobseekerID   int64     `json:"jobseeker_id" validate:"required"`
	ProposedDate  time.Time `json:"proposed_date" validate:"required"`
	Location      string    `json:"location" validate:"required,max=200"`
	InterviewType string    `json:"interview_type" validate:"required,oneof=in_person video phone"`
	Message       string    `json:"message" validate:"max=2000"`
}

// InterviewView is a read-time projection of a request for one side of the
// negotiation. JobseekerPhone is populated only while the request's current
// status discloses contact info.
type InterviewView struct {
	InterviewRequest
	JobseekerName  string  `json:"jobseeker_name"`
	EmployerName   string  `json:"employer_name"`
	JobseekerPhone *string `json:"jobseeker_phone,omitempty"`
}

type InterviewRepository interface {
	// Create inserts the request, returning ErrDuplicateInterview when an
	// in-flight request for the pair already exists.
	Create(ctx context.Context, request *InterviewRequest) error
	GetByID(ctx context.Context, id int64) (*InterviewRequest, error)
	HasActiveRequest(ctx context.Context, employerID, jobseekerID int64) (bool, error)
	// Respond moves a pending request to accepted or declined. Returns false
	// when the request was no longer pending.
	Respond(ctx context.Context, id int64, status string, message *string, respondedAt time.Time) (bool, error)
	// TransitionStatus is a conditional status update: it succeeds only when
	// the current status equals from.
	TransitionStatus(ctx context.Context, id int64, from, to string) (bool, error)
	Delete(ctx context.Context, id int64) error
	ListByEmployer(ctx context.Context, employerID int64) ([]InterviewRequest, error)
	ListByJobseeker(ctx context.Context, jobseekerID int64) ([]InterviewRequest, error)
}

type InterviewUsecase interface {
	Create(ctx context.Context, details InterviewDetails) (*InterviewRequest, error)
	Respond(ctx context.Context, requestID int64, decision string, message string) (*InterviewRequest, error)
	Cancel(ctx context.Context, requestID int64) (*InterviewRequest, error)
	MarkCompleted(ctx context.Context, requestID int64) (*InterviewRequest, error)
	Delete(ctx context.Context, requestID int64) error
	Get(ctx context.Context, requestID int64) (*InterviewView, error)
	ListMine(ctx context.Context) ([]InterviewView, error)
}
