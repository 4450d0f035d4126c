package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mavryck/model"
	"mavryck/utils"
)

type EventsRepo struct {
	MongoCollection *mongo.Collection
}

func GetEventsRepo(client *mongo.Client, database string) *EventsRepo {
	return &EventsRepo{
		MongoCollection: client.Database(database).Collection("event_requests"),
	}
}

func (r *EventsRepo) Create(ctx context.Context, event *model.EventRequest) error {
	timer := utils.TrackDBOperation("insert", "event_requests")
	defer timer.ObserveDuration()

	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()
	if event.Status == "" {
		event.Status = "pending"
	}

	_, err := r.MongoCollection.InsertOne(ctx, event)
	return normalizeError("create event request", err)
}

// List returns all event requests newest first.
func (r *EventsRepo) List(ctx context.Context) ([]*model.EventRequest, error) {
	timer := utils.TrackDBOperation("find", "event_requests")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, normalizeError("list event requests", err)
	}
	defer cursor.Close(ctx)

	var events []*model.EventRequest
	if err = cursor.All(ctx, &events); err != nil {
		return nil, normalizeError("list event requests", err)
	}
	return events, nil
}

// Update applies a partial field set and returns the updated record.
func (r *EventsRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.EventRequest, error) {
	timer := utils.TrackDBOperation("update", "event_requests")
	defer timer.ObserveDuration()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event model.EventRequest
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M(fields)}, opts).Decode(&event)
	if err != nil {
		return nil, normalizeError("update event request", err)
	}
	return &event, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", "event_requests")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return normalizeError("delete event request", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
