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

type MessagesRepo struct {
	MongoCollection *mongo.Collection
}

func GetMessagesRepo(client *mongo.Client, database string) *MessagesRepo {
	return &MessagesRepo{
		MongoCollection: client.Database(database).Collection("contact_messages"),
	}
}

func (r *MessagesRepo) Create(ctx context.Context, message *model.ContactMessage) error {
	timer := utils.TrackDBOperation("insert", "contact_messages")
	defer timer.ObserveDuration()

	message.ID = uuid.New().String()
	message.CreatedAt = time.Now()
	message.Read = false

	_, err := r.MongoCollection.InsertOne(ctx, message)
	return normalizeError("create contact message", err)
}

func (r *MessagesRepo) List(ctx context.Context) ([]*model.ContactMessage, error) {
	timer := utils.TrackDBOperation("find", "contact_messages")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, normalizeError("list contact messages", err)
	}
	defer cursor.Close(ctx)

	var messages []*model.ContactMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, normalizeError("list contact messages", err)
	}
	return messages, nil
}

func (r *MessagesRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.ContactMessage, error) {
	timer := utils.TrackDBOperation("update", "contact_messages")
	defer timer.ObserveDuration()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var message model.ContactMessage
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M(fields)}, opts).Decode(&message)
	if err != nil {
		return nil, normalizeError("update contact message", err)
	}
	return &message, nil
}

func (r *MessagesRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", "contact_messages")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return normalizeError("delete contact message", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
