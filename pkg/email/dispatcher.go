package email

import (
	"fmt"
	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/logger"
)

// Dispatcher adapts EmailService to the domain Notifier. Every notice is sent
// on its own goroutine after the caller's transaction has committed; failures
// are logged and swallowed so they can never roll back a state transition.
type Dispatcher struct {
	svc          *EmailService
	dashboardURL string
}

func NewDispatcher(svc *EmailService, frontendURL string) *Dispatcher {
	return &Dispatcher{
		svc:          svc,
		dashboardURL: frontendURL + "/dashboard",
	}
}

func (d *Dispatcher) InterviewRequested(n domain.InterviewRequestedNotice) {
	if !d.configured("interview_requested", n.RecipientEmail) {
		return
	}
	go func() {
		err := d.svc.SendInterviewRequested(n.RecipientEmail, InterviewRequestedData{
			JobseekerName: n.JobseekerName,
			EmployerName:  n.EmployerName,
			ProposedDate:  n.ProposedDate.Format("2 Jan 2006 15:04"),
			Location:      n.Location,
			InterviewType: n.InterviewType,
			Message:       n.Message,
			DashboardURL:  d.dashboardURL,
		})
		if err != nil {
			logger.Log.Warn("Failed to send interview request notification", "error", err)
		}
	}()
}

func (d *Dispatcher) InterviewResponded(n domain.InterviewRespondedNotice) {
	if !d.configured("interview_responded", n.RecipientEmail) {
		return
	}
	decision := "declined"
	if n.Accepted {
		decision = "accepted"
	}
	go func() {
		err := d.svc.SendInterviewResponded(n.RecipientEmail, InterviewRespondedData{
			EmployerName:  n.EmployerName,
			JobseekerName: n.JobseekerName,
			Decision:      decision,
			Message:       n.Message,
			DashboardURL:  d.dashboardURL,
		})
		if err != nil {
			logger.Log.Warn("Failed to send interview response notification", "error", err)
		}
	}()
}

func (d *Dispatcher) SnapshotSaved(n domain.SnapshotSavedNotice) {
	if !d.configured("snapshot_saved", n.RecipientEmail) {
		return
	}
	go func() {
		err := d.svc.SendSnapshotSaved(n.RecipientEmail, SnapshotSavedData{
			JobseekerName: n.JobseekerName,
			EmployerName:  n.EmployerName,
			SavedAt:       n.SavedAt.Format("2 Jan 2006"),
		})
		if err != nil {
			logger.Log.Warn("Failed to send snapshot notification", "error", err)
		}
	}()
}

func (d *Dispatcher) configured(kind, recipient string) bool {
	if d.svc == nil || !d.svc.IsConfigured() {
		logger.Log.Info(fmt.Sprintf("Email service not configured, skipping %s notification", kind), "recipient", recipient)
		return false
	}
	return true
}
