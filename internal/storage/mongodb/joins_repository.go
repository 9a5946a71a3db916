package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jaberDevHub/help-hive-server-side/internal/domain/joins"
	"github.com/jaberDevHub/help-hive-server-side/internal/metrics"
)

// JoinsRepository implements joins.Repository on a MongoDB collection.
type JoinsRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

type joinDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	EventID          string             `bson:"event_id"`
	ParticipantEmail string             `bson:"participant_email"`
	JoinedAt         time.Time          `bson:"joined_at"`
	Event            eventDoc           `bson:"event"`
}

func (d joinDoc) toDomain() joins.JoinRecord {
	return joins.JoinRecord{
		ID:               d.ID.Hex(),
		EventID:          d.EventID,
		ParticipantEmail: d.ParticipantEmail,
		JoinedAt:         d.JoinedAt,
		Event:            d.Event.toDomain(),
	}
}

func (r *JoinsRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Create records a participant joining an event, embedding a snapshot of
// the event as it looked at join time. The unique index on
// (event_id, participant_email) turns a repeat join into
// joins.ErrAlreadyJoined, regardless of how many requests race.
func (r *JoinsRepository) Create(ctx context.Context, params joins.CreateParams) (string, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	doc := joinDoc{
		EventID:          params.EventID,
		ParticipantEmail: params.ParticipantEmail,
		JoinedAt:         time.Now().UTC(),
		Event:            eventDocFromDomain(params.Event),
	}

	start := time.Now()
	res, err := r.collection.InsertOne(ctx, doc)
	metrics.RecordQuery("insert_join", start, queryErr(err))
	if mongo.IsDuplicateKeyError(err) {
		return "", joins.ErrAlreadyJoined
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert join record: %w", err)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// ListByParticipant returns the events a participant has joined, most
// recent join first.
func (r *JoinsRepository) ListByParticipant(ctx context.Context, email string) ([]joins.JoinRecord, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	start := time.Now()
	opts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"participant_email": email}, opts)
	metrics.RecordQuery("list_joins", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list join records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []joinDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode join records: %w", err)
	}

	result := make([]joins.JoinRecord, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result, nil
}
