// Package apierror shapes every error the API returns as an RFC 9457
// problem document, so clients branch on a stable "type" URN instead of
// parsing message strings.
package apierror

// ProblemDetails is the wire form of one error occurrence.
// See https://www.rfc-editor.org/rfc/rfc9457.html for the base fields.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// RequestID echoes X-Request-ID so a client report can be matched to
	// server logs.
	RequestID string `json:"request_id,omitempty"`
	// UserMessage is safe to show verbatim in the UI; Detail is not
	// always.
	UserMessage string `json:"user_message,omitempty"`
	// RetryAfter mirrors the Retry-After header in seconds on 429/503.
	RetryAfter *int `json:"retry_after,omitempty"`
	// Action hints what the client should do next, e.g.
	// "refresh_insights" or "pick_earlier_date".
	Action string `json:"action,omitempty"`
	// Errors carries per-field validation failures.
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError pins a validation failure to one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
