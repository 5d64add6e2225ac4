package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taplejung/menu-system/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository implements ports.AuditRecorder using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the indexes used to browse the trail by time and
// by actor.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

// Record persists an audit event to the audit_events collection.
func (r *AuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := bson.M{
		"_id":    event.ID,
		"action": string(event.Action),
		"at":     event.At.UTC(),
	}
	if event.ActorID != 0 {
		doc["actor_id"] = event.ActorID
		doc["actor_name"] = event.ActorName
	}
	if event.TargetID != 0 {
		doc["target_id"] = event.TargetID
	}
	if event.Detail != "" {
		doc["detail"] = event.Detail
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("audit insert: %w", err)
	}
	return nil
}
