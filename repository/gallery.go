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

type GalleryRepo struct {
	MongoCollection *mongo.Collection
}

func GetGalleryRepo(client *mongo.Client, database string) *GalleryRepo {
	return &GalleryRepo{
		MongoCollection: client.Database(database).Collection("gallery_items"),
	}
}

func (r *GalleryRepo) Create(ctx context.Context, item *model.GalleryItem) error {
	timer := utils.TrackDBOperation("insert", "gallery_items")
	defer timer.ObserveDuration()

	item.ID = uuid.New().String()
	item.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, item)
	return normalizeError("create gallery item", err)
}

func (r *GalleryRepo) List(ctx context.Context) ([]*model.GalleryItem, error) {
	timer := utils.TrackDBOperation("find", "gallery_items")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, normalizeError("list gallery items", err)
	}
	defer cursor.Close(ctx)

	var items []*model.GalleryItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, normalizeError("list gallery items", err)
	}
	return items, nil
}

func (r *GalleryRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.GalleryItem, error) {
	timer := utils.TrackDBOperation("update", "gallery_items")
	defer timer.ObserveDuration()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item model.GalleryItem
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M(fields)}, opts).Decode(&item)
	if err != nil {
		return nil, normalizeError("update gallery item", err)
	}
	return &item, nil
}

func (r *GalleryRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", "gallery_items")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return normalizeError("delete gallery item", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
