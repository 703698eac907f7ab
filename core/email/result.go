package email

// Result is the outcome of a send attempt reported to callers as data.
// MessageID is nil whenever Success is false.
type Result struct {
	Success   bool    `json:"success"`
	MessageID *string `json:"messageId"`
	Error     string  `json:"error,omitempty"`
}

// Sent builds a successful Result.
func Sent(messageID string) Result {
	return Result{Success: true, MessageID: &messageID}
}

// Failed builds a failed Result carrying the error text.
func Failed(err error) Result {
	if err == nil {
		return Result{Success: false}
	}
	return Result{Success: false, Error: err.Error()}
}

// NotConfigured is the Result for sends attempted without a transport.
func NotConfigured() Result {
	return Result{Success: false, Error: NotConfiguredMessage}
}
