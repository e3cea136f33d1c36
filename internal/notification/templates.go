package notification

import (
	"bytes"
	"fmt"
	"text/template"
)

var templates = map[string]*template.Template{
	TemplateLeaveRequest: template.Must(template.New(TemplateLeaveRequest).Parse(
		`Subject: New leave request from {{.EmployeeName}}

{{.EmployeeName}} has requested {{.TotalDays}} day(s) of {{.LeaveType}} leave
from {{.StartDate}} to {{.EndDate}}.

Reason: {{.Reason}}

Please review the request in the leave portal.`,
	)),
	TemplateLeaveApproval: template.Must(template.New(TemplateLeaveApproval).Parse(
		`Subject: Your leave request has been {{.Status}}

Hi {{.EmployeeName}},

Your {{.LeaveType}} leave request ({{.StartDate}} to {{.EndDate}}) is now {{.Status}}.
{{- if .Comments}}

Comments from the approver: {{.Comments}}
{{- end}}`,
	)),
}

// Render produces the mail body for a message. Unknown templates are an
// error so a typo'd template id fails loudly in the notifier instead of
// sending an empty mail.
func Render(msg Message) (string, error) {
	tmpl, ok := templates[msg.Template]
	if !ok {
		return "", fmt.Errorf("unknown notification template: %s", msg.Template)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, msg.Data); err != nil {
		return "", fmt.Errorf("render template %s: %w", msg.Template, err)
	}
	return buf.String(), nil
}
