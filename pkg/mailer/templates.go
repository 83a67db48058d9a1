package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

var textTemplates = template.Must(template.New("notify").Parse(`
{{define "welcome"}}Hi {{.Name}},

Your {{.AppName}} account is ready. You can now sign in with your email address.

— {{.AppName}}{{end}}

{{define "account_locked"}}Hi {{.Name}},

Your account was temporarily locked after too many failed sign-in attempts.
You can try again after {{.LockUntil}}. If this was not you, please reset your
password once the lock expires.

— {{.AppName}}{{end}}

{{define "order_status"}}Hi {{.Name}},

Your order {{.OrderID}} is now {{.Status}}.

— {{.AppName}}{{end}}
`))

// Render produces subject and text body for a notification job.
func Render(job Job) (subject, text string, err error) {
	switch job.Kind {
	case KindWelcome:
		subject = "Welcome to your farm account"
	case KindAccountLocked:
		subject = "Your account has been temporarily locked"
	case KindOrderConfirmed:
		subject = "Update on your order"
	default:
		return "", "", fmt.Errorf("mailer: unknown job kind %q", job.Kind)
	}

	var buf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&buf, job.Kind, job.Data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
