package guard

import "net/http"

// Denial codes returned to clients.
const (
	CodeUnauthenticated         = "unauthenticated"
	CodeInsufficientPermissions = "insufficient_permissions"
	CodeInsufficientRole        = "insufficient_role"
	CodeSubscriptionRequired    = "subscription_required"
)

// Denial is a structured negative authorization result.
// Details always carry enough context for the caller to render an upgrade or
// access-request prompt, never a bare "forbidden".
type Denial struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func unauthenticated(message string) *Denial {
	return &Denial{
		Status:  http.StatusUnauthorized,
		Code:    CodeUnauthenticated,
		Message: message,
	}
}

func forbidden(code, message string, details map[string]any) *Denial {
	return &Denial{
		Status:  http.StatusForbidden,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func paymentRequired(message string) *Denial {
	return &Denial{
		Status:  http.StatusPaymentRequired,
		Code:    CodeSubscriptionRequired,
		Message: message,
	}
}
