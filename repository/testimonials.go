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

type TestimonialsRepo struct {
	MongoCollection *mongo.Collection
}

func GetTestimonialsRepo(client *mongo.Client, database string) *TestimonialsRepo {
	return &TestimonialsRepo{
		MongoCollection: client.Database(database).Collection("testimonials"),
	}
}

func (r *TestimonialsRepo) Create(ctx context.Context, testimonial *model.Testimonial) error {
	timer := utils.TrackDBOperation("insert", "testimonials")
	defer timer.ObserveDuration()

	testimonial.ID = uuid.New().String()
	testimonial.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, testimonial)
	return normalizeError("create testimonial", err)
}

func (r *TestimonialsRepo) List(ctx context.Context) ([]*model.Testimonial, error) {
	timer := utils.TrackDBOperation("find", "testimonials")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, normalizeError("list testimonials", err)
	}
	defer cursor.Close(ctx)

	var testimonials []*model.Testimonial
	if err = cursor.All(ctx, &testimonials); err != nil {
		return nil, normalizeError("list testimonials", err)
	}
	return testimonials, nil
}

func (r *TestimonialsRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Testimonial, error) {
	timer := utils.TrackDBOperation("update", "testimonials")
	defer timer.ObserveDuration()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var testimonial model.Testimonial
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M(fields)}, opts).Decode(&testimonial)
	if err != nil {
		return nil, normalizeError("update testimonial", err)
	}
	return &testimonial, nil
}

func (r *TestimonialsRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", "testimonials")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return normalizeError("delete testimonial", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
