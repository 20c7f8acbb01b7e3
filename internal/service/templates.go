package service

import (
	"bytes"
	"html/template"
	"strings"
)

var funcs = template.FuncMap{
	// lines splits user text so each line can be joined with <br>.
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}

const multiline = `{{define "multiline"}}{{range $i, $l := lines .}}{{if $i}}<br>{{end}}{{$l}}{{end}}{{end}}`

var (
	contactAdminTmpl = mustParse("contact_admin", `
<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p>{{template "multiline" .Message}}</p>
<hr>
<p><em>This message was sent from the FitGenius Hub contact form.</em></p>`)

	contactConfirmTmpl = mustParse("contact_confirm", `
<h2>Thank you for contacting us!</h2>
<p>Dear {{.Name}},</p>
<p>We have received your message and will get back to you as soon as possible.</p>
<p><strong>Your message:</strong></p>
<p>{{template "multiline" .Message}}</p>
<hr>
<p>Best regards,<br>The FitGenius Hub Team</p>
<p><em>This is an automated response. Please do not reply to this email.</em></p>`)

	membershipAdminTmpl = mustParse("membership_admin", `
<h2>New Membership Inquiry</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
{{if .Message}}<p><strong>Additional Message:</strong></p><p>{{template "multiline" .Message}}</p>{{end}}
<hr>
<p><em>This inquiry was submitted through the FitGenius Hub membership form.</em></p>`)

	membershipConfirmTmpl = mustParse("membership_confirm", `
<h2>Thank you for your interest in FitGenius Hub!</h2>
<p>Dear {{.Name}},</p>
<p>We have received your membership inquiry and our team will contact you within 24 hours to discuss our membership options and answer any questions you may have.</p>
<p>In the meantime, here's what you can expect:</p>
<ul>
  <li>Personal consultation call</li>
  <li>Membership plan options</li>
  <li>Facility tour (if applicable)</li>
  <li>Special introductory offers</li>
</ul>
<p>We look forward to helping you achieve your fitness goals!</p>
<hr>
<p>Best regards,<br>The FitGenius Hub Team</p>
<p><em>This is an automated response. Please do not reply to this email.</em></p>`)

	passwordResetTmpl = mustParse("password_reset", `
<h2>Password reset</h2>
<p>Hi {{.Name}},</p>
<p>We received a request to reset your FitGenius Hub password. The link below is valid for {{.Minutes}} minutes:</p>
<p><a href="{{.Link}}">Reset my password</a></p>
<p>If you did not ask for this, you can ignore this email.</p>`)

	membershipExpiredTmpl = mustParse("membership_expired", `
<h2>Your membership has expired</h2>
<p>Hi {{.Name}},</p>
<p>Your {{.Type}} membership ended on {{.EndDate}}. Renew it any time to keep your plans and progress tracking.</p>
<p>Best regards,<br>The FitGenius Hub Team</p>`)
)

func mustParse(name, body string) *template.Template {
	return template.Must(template.Must(template.New(name).Funcs(funcs).Parse(multiline)).Parse(body))
}

// render executes an email template. User-provided values are HTML-escaped.
func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
