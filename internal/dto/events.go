package dto

// SmsRequestedEvent is published on the broker whenever a flow needs an SMS
// delivered. The sms-worker consumes it; delivery failure never propagates
// back into the auth flow that produced it.
type SmsRequestedEvent struct {
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}
