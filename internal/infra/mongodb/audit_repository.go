package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

const auditCollection = "audit_logs"

// PurchaseAudit is the document stored for every committed purchase.
type PurchaseAudit struct {
	ID            string    `bson:"_id,omitempty"`
	TransactionID string    `bson:"transaction_id"`
	UserID        string    `bson:"user_id"`
	DispenserID   string    `bson:"dispenser_id"`
	ProductID     string    `bson:"product_id"`
	RowNumber     int       `bson:"row_number"`
	CreditsUsed   int64     `bson:"credits_used"`
	NewBalance    int64     `bson:"new_balance"`
	Status        string    `bson:"status"`
	ProcessedAt   time.Time `bson:"processed_at"`
}

type AuditRepository struct {
	collection *mongo.Collection
}

func NewAuditRepository(client *mongo.Client, dbName string) *AuditRepository {
	return &AuditRepository{collection: client.Database(dbName).Collection(auditCollection)}
}

// Save inserts the document keyed by transaction ID, so a redelivered
// event is stored once.
func (r *AuditRepository) Save(ctx context.Context, audit PurchaseAudit) error {
	audit.ID = audit.TransactionID
	audit.ProcessedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}
