package models

import "time"

// Audit actions recorded by the service layer.
const (
	AuditActionLogin      = "auth.login"
	AuditActionUserCreate = "user.create"
	AuditActionUserUpdate = "user.update"
	AuditActionUserDelete = "user.delete"
	AuditActionItemStatus = "item.status"
)

// AuditLog is a best-effort operational trail entry. Write failures are
// logged and never fail the originating request.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"user_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	OldValues  []byte    `db:"old_values" json:"old_values,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent  string    `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
