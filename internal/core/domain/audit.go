package domain

import "time"

type AuditAction string

const (
	AuditLogin          AuditAction = "login"
	AuditLoginFailed    AuditAction = "login_failed"
	AuditLogout         AuditAction = "logout"
	AuditPasswordChange AuditAction = "password_change"
	AuditStaffAdd       AuditAction = "staff_add"
	AuditStaffDelete    AuditAction = "staff_delete"
	AuditMenuAdd        AuditAction = "menu_add"
	AuditMenuUpdate     AuditAction = "menu_update"
	AuditMenuDelete     AuditAction = "menu_delete"
	AuditMenuImport     AuditAction = "menu_import"
)

// AuditEvent is an append-only record of a staff action.
type AuditEvent struct {
	ID        string      `json:"id" bson:"_id"`
	Action    AuditAction `json:"action" bson:"action"`
	ActorID   int64       `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	ActorName string      `json:"actor_name,omitempty" bson:"actor_name,omitempty"`
	TargetID  int64       `json:"target_id,omitempty" bson:"target_id,omitempty"`
	Detail    string      `json:"detail,omitempty" bson:"detail,omitempty"`
	At        time.Time   `json:"at" bson:"at"`
}
