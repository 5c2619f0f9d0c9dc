package validator

// User is the identity returned by the identity-lookup endpoint.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Result is the outcome of validating one credential set.
type Result struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

// Result messages.
const (
	MessageValid           = "Valid"
	MessageUnauthorized    = "Unauthorized - Invalid or expired token"
	MessageForbidden       = "Forbidden - Insufficient permissions"
	MessageNotFound        = "Not Found - Check if the URL is correct"
	MessageRefused         = "Connection refused - Server may be down"
	MessageHostNotFound    = "Host not found - Check the URL"
	MessageTimeout         = "Connection timed out"
	MessageCertificate     = "SSL/TLS certificate error"
	MessageInvalidResponse = "Invalid response - expected JSON from " + IdentityPath
)
