package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jaberDevHub/help-hive-server-side/internal/domain/events"
	"github.com/jaberDevHub/help-hive-server-side/internal/metrics"
)

// EventsRepository implements events.Repository on a MongoDB collection.
type EventsRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

type eventDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	EventType   string             `bson:"event_type,omitempty"`
	Thumbnail   string             `bson:"thumbnail,omitempty"`
	Location    string             `bson:"location,omitempty"`
	EventDate   time.Time          `bson:"event_date"`
	Email       string             `bson:"email"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d eventDoc) toDomain() events.Event {
	return events.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		EventType:   d.EventType,
		Thumbnail:   d.Thumbnail,
		Location:    d.Location,
		EventDate:   d.EventDate,
		Email:       d.Email,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func eventDocFromDomain(ev events.Event) eventDoc {
	// The id was produced by this package, so the hex round trip only
	// fails for hand-crafted values; those fall back to the zero id.
	oid, _ := primitive.ObjectIDFromHex(ev.ID)
	return eventDoc{
		ID:          oid,
		Title:       ev.Title,
		Description: ev.Description,
		EventType:   ev.EventType,
		Thumbnail:   ev.Thumbnail,
		Location:    ev.Location,
		EventDate:   ev.EventDate,
		Email:       ev.Email,
		CreatedAt:   ev.CreatedAt,
		UpdatedAt:   ev.UpdatedAt,
	}
}

func (r *EventsRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// ListUpcoming returns events at or after the cutoff in filters,
// soonest first, optionally narrowed by exact type and a
// case-insensitive title search.
func (r *EventsRepository) ListUpcoming(ctx context.Context, filters events.Filters) ([]events.Event, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	filter := bson.M{"event_date": bson.M{"$gte": filters.NotBefore.UTC()}}
	if filters.Type != "" {
		filter["event_type"] = filters.Type
	}
	if filters.Search != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(filters.Search), "$options": "i"}
	}

	start := time.Now()
	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	metrics.RecordQuery("list_events", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeEvents(ctx, cursor)
}

// ListByCreator returns every event created by the given email, newest
// first, past events included.
func (r *EventsRepository) ListByCreator(ctx context.Context, email string) ([]events.Event, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	start := time.Now()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	metrics.RecordQuery("list_events_by_creator", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by creator: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeEvents(ctx, cursor)
}

func decodeEvents(ctx context.Context, cursor *mongo.Cursor) ([]events.Event, error) {
	var docs []eventDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	result := make([]events.Event, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result, nil
}

// GetByID fetches a single event. Malformed ids are reported as not
// found rather than as errors, so probing with junk ids yields 404s.
func (r *EventsRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, events.ErrNotFound
	}

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	start := time.Now()
	var doc eventDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	metrics.RecordQuery("get_event", start, queryErr(err))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, events.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	ev := doc.toDomain()
	return &ev, nil
}

// Create inserts a new event and returns its generated id.
func (r *EventsRepository) Create(ctx context.Context, params events.CreateParams) (string, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	doc := eventDoc{
		Title:       params.Title,
		Description: params.Description,
		EventType:   params.EventType,
		Thumbnail:   params.Thumbnail,
		Location:    params.Location,
		EventDate:   params.EventDate.UTC(),
		Email:       params.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	start := time.Now()
	res, err := r.collection.InsertOne(ctx, doc)
	metrics.RecordQuery("insert_event", start, err)
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Update applies the non-nil fields of params to an existing event.
func (r *EventsRepository) Update(ctx context.Context, id string, params events.UpdateParams) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return events.ErrNotFound
	}

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if params.Title != nil {
		set["title"] = *params.Title
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}
	if params.EventType != nil {
		set["event_type"] = *params.EventType
	}
	if params.Thumbnail != nil {
		set["thumbnail"] = *params.Thumbnail
	}
	if params.Location != nil {
		set["location"] = *params.Location
	}
	if params.EventDate != nil {
		set["event_date"] = params.EventDate.UTC()
	}

	start := time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	metrics.RecordQuery("update_event", start, err)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return events.ErrNotFound
	}
	return nil
}

// Delete removes an event. Join records that embedded the event keep
// their snapshot; nothing cascades.
func (r *EventsRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return events.ErrNotFound
	}

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	metrics.RecordQuery("delete_event", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return events.ErrNotFound
	}
	return nil
}

// queryErr filters expected driver outcomes out of the error metrics, so
// not-found lookups and duplicate joins don't show up as database errors.
func queryErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) || mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}
