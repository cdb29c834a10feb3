package domain

import "time"

// Audit actions recorded for authentication operations.
const (
	AuditLogin    = "login"
	AuditRegister = "register"
)

// AuditEntry records the outcome of a single authentication operation.
// Entries are written best-effort; losing one never fails the operation.
type AuditEntry struct {
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Success   bool      `json:"success"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
