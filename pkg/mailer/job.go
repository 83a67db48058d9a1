package mailer

// Notification kinds carried on the queue.
const (
	KindWelcome        = "welcome"
	KindAccountLocked  = "account_locked"
	KindOrderConfirmed = "order_status"
)

// Job is the JSON payload put on the RabbitMQ queue by the API and consumed
// by the notify worker. Data keys depend on Kind; see templates.go.
type Job struct {
	To   string         `json:"to"`
	Kind string         `json:"kind"`
	Data map[string]any `json:"data,omitempty"`
}
