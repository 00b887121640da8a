package domain

import "time"

// Notices are the payloads handed to the notification dispatcher after a
// state transition has committed. Delivery is best-effort: dispatcher
// failures are logged and swallowed, never surfaced as the operation's
// result.

type InterviewRequestedNotice struct {
	RecipientEmail string
	JobseekerName  string
	EmployerName   string
	ProposedDate   time.Time
	Location       string
	InterviewType  string
	Message        string
}

type InterviewRespondedNotice struct {
	RecipientEmail string
	EmployerName   string
	JobseekerName  string
	Accepted       bool
	Message        string
}

type SnapshotSavedNotice struct {
	RecipientEmail string
	JobseekerName  string
	EmployerName   string
	SavedAt        time.Time
}

// Notifier is the fire-and-forget notification dispatcher
type Notifier interface {
	InterviewRequested(notice InterviewRequestedNotice)
	InterviewResponded(notice InterviewRespondedNotice)
	SnapshotSaved(notice SnapshotSavedNotice)
}
