package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeedIfEmpty populates the events collection with sample community
// events when it holds no documents, so a fresh install has something
// to show. Dates are relative to now, keeping the samples upcoming no
// matter when the server first boots. A non-empty collection is left
// untouched, which makes this safe to run on every start.
func (s *Store) SeedIfEmpty(ctx context.Context, logger zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	count, err := s.events.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count events: %w", err)
	}
	if count > 0 {
		logger.Debug().Int64("events", count).Msg("events collection already populated, skipping seed")
		return nil
	}

	now := time.Now().UTC()
	samples := sampleEvents(now)

	docs := make([]interface{}, 0, len(samples))
	for _, doc := range samples {
		docs = append(docs, doc)
	}
	if _, err := s.events.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	joinDocs := []interface{}{
		joinDoc{
			EventID:          samples[0].ID.Hex(),
			ParticipantEmail: "nadia.rahman@example.com",
			JoinedAt:         now,
			Event:            samples[0],
		},
		joinDoc{
			EventID:          samples[1].ID.Hex(),
			ParticipantEmail: "nadia.rahman@example.com",
			JoinedAt:         now,
			Event:            samples[1],
		},
	}
	if _, err := s.joins.collection.InsertMany(ctx, joinDocs); err != nil {
		return fmt.Errorf("failed to seed join records: %w", err)
	}

	logger.Info().
		Int("events", len(samples)).
		Int("joins", len(joinDocs)).
		Msg("seeded sample data")
	return nil
}

func sampleEvents(now time.Time) []eventDoc {
	mk := func(title, description, eventType, thumbnail, location string, daysAhead int) eventDoc {
		return eventDoc{
			ID:          primitive.NewObjectID(),
			Title:       title,
			Description: description,
			EventType:   eventType,
			Thumbnail:   thumbnail,
			Location:    location,
			EventDate:   now.AddDate(0, 0, daysAhead),
			Email:       "organizer@helphive.org",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	return []eventDoc{
		mk(
			"Community Road Cleanup",
			"<p>Join neighbors for a morning of clearing litter from the main road and planting flowers along the median. Gloves and bags provided.</p>",
			"Cleanup",
			"https://images.unsplash.com/photo-1558618666-fcd25c85cd64",
			"Mirpur 10, Dhaka",
			7,
		),
		mk(
			"Winter Cloth Donation Drive",
			"<p>Collecting warm clothes and blankets for families in the north. Drop off what you can spare, or help sort and pack donations.</p>",
			"Donation",
			"https://images.unsplash.com/photo-1488521787991-ed7bbaae773c",
			"Uttara Sector 7, Dhaka",
			14,
		),
		mk(
			"Free Health Checkup Camp",
			"<p>Volunteer doctors offering blood pressure, diabetes, and general health screenings. Volunteers needed for registration and crowd management.</p>",
			"Healthcare",
			"https://images.unsplash.com/photo-1576091160399-112ba8d25d1d",
			"Savar Community Center",
			21,
		),
		mk(
			"Tree Plantation Day",
			"<p>Planting five hundred saplings along the river embankment. Bring a spade if you have one; saplings and water are arranged.</p>",
			"Plantation",
			"https://images.unsplash.com/photo-1542601906990-b4d3fb778b09",
			"Turag Riverbank, Gazipur",
			30,
		),
		mk(
			"Street Children Education Meetup",
			"<p>Weekly open-air classes in reading and arithmetic. Teachers, storytellers, and anyone who can spare two hours are welcome.</p>",
			"Education",
			"https://images.unsplash.com/photo-1497486751825-1233686d5d80",
			"Kamalapur Railway Station Area",
			10,
		),
		mk(
			"Blood Donation Camp",
			"<p>Quarterly camp with the red crescent youth wing. Donors and volunteers for the refreshment desk both needed.</p>",
			"Healthcare",
			"https://images.unsplash.com/photo-1615461066841-6116e61058f4",
			"Dhaka University TSC",
			45,
		),
	}
}
