package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the created_at indexes every list endpoint sorts
// on, plus lookup indexes for the dashboard filters.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	createdAtDesc := func(name string) []mongo.IndexModel {
		return []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName(name + "_created_at"),
			},
		}
	}

	collections := map[string][]mongo.IndexModel{
		"event_requests": append(createdAtDesc("event_requests"),
			mongo.IndexModel{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("event_requests_status"),
			}),
		"contact_messages": append(createdAtDesc("contact_messages"),
			mongo.IndexModel{
				Keys:    bson.D{{Key: "read", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("contact_messages_read"),
			}),
		"gallery_items": append(createdAtDesc("gallery_items"),
			mongo.IndexModel{
				Keys:    bson.D{{Key: "category", Value: 1}},
				Options: options.Index().SetName("gallery_items_category"),
			}),
		"products": append(createdAtDesc("products"),
			mongo.IndexModel{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "available", Value: 1}},
				Options: options.Index().SetName("products_category"),
			}),
		"testimonials": append(createdAtDesc("testimonials"),
			mongo.IndexModel{
				Keys:    bson.D{{Key: "approved", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("testimonials_approved"),
			}),
	}

	for name, indexes := range collections {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
