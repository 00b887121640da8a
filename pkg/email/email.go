package email

import (
	"bytes"
	"fmt"
	"go-talentmatch-backend/config"
	"html/template"
	"net/smtp"
)

// EmailService delivers notification emails via SMTP. All notifications are
// best-effort: callers fire them after the state transition has committed and
// never fail the operation when delivery fails.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// InterviewRequestedData holds the data for the "new interview request" email
// sent to a jobseeker.
type InterviewRequestedData struct {
	JobseekerName string
	EmployerName  string
	ProposedDate  string
	Location      string
	InterviewType string
	Message       string
	DashboardURL  string
}

// InterviewRespondedData holds the data for the "jobseeker responded" email
// sent back to the employer.
type InterviewRespondedData struct {
	EmployerName  string
	JobseekerName string
	Decision      string
	Message       string
	DashboardURL  string
}

// SnapshotSavedData holds the data for the "your CV was saved" email sent to a
// jobseeker when an employer freezes a copy of their CV.
type SnapshotSavedData struct {
	JobseekerName string
	EmployerName  string
	SavedAt       string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

const interviewRequestedTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Interview Request</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Interview Request</h1>
        </div>
        <div class="content">
            <p>Hi {{.JobseekerName}},</p>
            <p><strong>{{.EmployerName}}</strong> would like to interview you.</p>
            <div class="field"><span class="label">Proposed date:</span> {{.ProposedDate}}</div>
            <div class="field"><span class="label">Location:</span> {{.Location}}</div>
            <div class="field"><span class="label">Type:</span> {{.InterviewType}}</div>
            {{if .Message}}<div class="message-box">{{.Message}}</div>{{end}}
            <p>Sign in to accept or decline: <a href="{{.DashboardURL}}">{{.DashboardURL}}</a></p>
        </div>
        <div class="footer">
            <p>You received this email because your CV is published on TalentMatch.</p>
        </div>
    </div>
</body>
</html>`

const interviewRespondedTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Interview Request Update</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Interview Request {{.Decision}}</h1>
        </div>
        <div class="content">
            <p>Hi {{.EmployerName}},</p>
            <p><strong>{{.JobseekerName}}</strong> has {{.Decision}} your interview request.</p>
            {{if .Message}}<div class="message-box">{{.Message}}</div>{{end}}
            <p>View the request: <a href="{{.DashboardURL}}">{{.DashboardURL}}</a></p>
        </div>
        <div class="footer">
            <p>This email was sent by TalentMatch.</p>
        </div>
    </div>
</body>
</html>`

const snapshotSavedTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your CV Was Saved</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>An Employer Saved Your CV</h1>
        </div>
        <div class="content">
            <p>Hi {{.JobseekerName}},</p>
            <p><strong>{{.EmployerName}}</strong> saved a copy of your CV on {{.SavedAt}}.</p>
        </div>
        <div class="footer">
            <p>You received this email because your CV is published on TalentMatch.</p>
        </div>
    </div>
</body>
</html>`

// SendInterviewRequested notifies a jobseeker of a new interview request
func (s *EmailService) SendInterviewRequested(to string, data InterviewRequestedData) error {
	return s.send(to, fmt.Sprintf("Interview request from %s", data.EmployerName), interviewRequestedTemplate, data)
}

// SendInterviewResponded notifies an employer that a jobseeker responded
func (s *EmailService) SendInterviewResponded(to string, data InterviewRespondedData) error {
	return s.send(to, fmt.Sprintf("%s %s your interview request", data.JobseekerName, data.Decision), interviewRespondedTemplate, data)
}

// SendSnapshotSaved notifies a jobseeker that an employer saved their CV
func (s *EmailService) SendSnapshotSaved(to string, data SnapshotSavedData) error {
	return s.send(to, "An employer saved your CV", snapshotSavedTemplate, data)
}

func (s *EmailService) send(to, subject, tmplText string, data interface{}) error {
	tmpl, err := template.New("email").Parse(tmplText)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
