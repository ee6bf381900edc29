// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// NotificationEmailData holds data for notification email templates.
// HTMLBody must already be sanitized; the template renders it verbatim.
// When it is empty the escaped plain-text Body fills the HTML part.
type NotificationEmailData struct {
	SiteName string
	Subject  string
	Body     string // plain text; HTML-escaped by the template
	HTMLBody template.HTML
}

// BuildNotificationEmail creates a notification email with both HTML and text bodies.
func BuildNotificationEmail(data NotificationEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("[%s] %s", data.SiteName, data.Subject),
		TextBody: buildNotificationText(data),
		HTMLBody: buildNotificationHTML(data),
	}
}

func buildNotificationText(data NotificationEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(data.Subject + "\n\n")
	buf.WriteString(data.Body + "\n\n")
	buf.WriteString(fmt.Sprintf("You are receiving this because an email channel is registered on your %s account.\n", data.SiteName))
	return buf.String()
}

func buildNotificationHTML(data NotificationEmailData) string {
	tmpl := template.Must(template.New("notification").Parse(notificationHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const notificationHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Subject}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>

          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px; font-size: 18px; font-weight: 600; color: #1f2937;">{{.Subject}}</h2>
              {{if .HTMLBody}}<div style="font-size: 15px; color: #374151; line-height: 1.6;">{{.HTMLBody}}</div>{{else}}<p style="margin: 0; font-size: 15px; color: #374151; line-height: 1.6; white-space: pre-line;">{{.Body}}</p>{{end}}
            </td>
          </tr>

          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                You are receiving this because an email channel is registered on your {{.SiteName}} account.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
