// internal/models/audit_log.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditLog struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	RequestID    string             `json:"request_id" bson:"request_id"`
	UserEmail    string             `json:"user_email,omitempty" bson:"user_email,omitempty"`
	Action       string             `json:"action" bson:"action"`
	ResourceType string             `json:"resource_type" bson:"resource_type"`
	ResourceID   string             `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	Status       int                `json:"status" bson:"status"`
	DurationMS   int64              `json:"duration_ms" bson:"duration_ms"`
	IPAddress    string             `json:"ip_address" bson:"ip_address"`
	UserAgent    string             `json:"user_agent" bson:"user_agent"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
