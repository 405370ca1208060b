package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

var contactRequestTmpl = template.Must(template.New("contact_request").Parse(`<div>
  <h2>New blood donation contact request</h2>
  <p>Hi {{.DonorName}},</p>
  <p><strong>{{.RequesterName}}</strong>{{if .RequesterArea}} from {{.RequesterArea}}{{end}} is looking for a <strong>{{.BloodGroup}}</strong> donor and would like to get in touch.</p>
  {{if .Hospital}}<p>Hospital: {{.Hospital}}</p>{{end}}
  {{if .Address}}<p>Address: {{.Address}}</p>{{end}}
  {{if .ContactPhone}}<p>Contact phone: {{.ContactPhone}}</p>{{end}}
  {{if .RequiredTime}}<p>Needed by: {{.RequiredTime}}</p>{{end}}
  {{if .Message}}<blockquote>{{.Message}}</blockquote>{{end}}
  <p>Open your requests page to approve or reject this request. Your contact details stay private until you approve.</p>
</div>`))

var bulkUrgentTmpl = template.Must(template.New("bulk_urgent").Parse(`<div>
  <h2>Urgent blood needed: {{.BloodGroup}}</h2>
  <p>Hi {{.DonorName}},</p>
  <p>{{.Body}}</p>
  {{if .Hospital}}<p>Hospital: {{.Hospital}}</p>{{end}}
  <p>If you are able to donate, please open the app and respond.</p>
</div>`))

// ContactRequestEmailData feeds the notification sent to a donor when a new
// contact request arrives.
type ContactRequestEmailData struct {
	DonorName     string
	RequesterName string
	RequesterArea string
	BloodGroup    string
	Hospital      string
	Address       string
	ContactPhone  string
	RequiredTime  string
	Message       string
}

// ContactRequestEmail renders the subject and HTML body for a new-request notification.
func ContactRequestEmail(data ContactRequestEmailData) (subject, html string, err error) {
	var buf strings.Builder
	if err := contactRequestTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render contact request email: %w", err)
	}
	return fmt.Sprintf("%s wants to contact you about blood donation", data.RequesterName), buf.String(), nil
}

// BulkUrgentEmailData feeds the urgent-need broadcast sent to matching donors.
type BulkUrgentEmailData struct {
	DonorName  string
	BloodGroup string
	Hospital   string
	Body       string
}

// BulkUrgentEmail renders the subject and HTML body for an urgent-need broadcast.
func BulkUrgentEmail(data BulkUrgentEmailData) (subject, html string, err error) {
	var buf strings.Builder
	if err := bulkUrgentTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render urgent need email: %w", err)
	}
	return fmt.Sprintf("Urgent: %s blood needed", data.BloodGroup), buf.String(), nil
}
