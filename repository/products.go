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

type ProductsRepo struct {
	MongoCollection *mongo.Collection
}

func GetProductsRepo(client *mongo.Client, database string) *ProductsRepo {
	return &ProductsRepo{
		MongoCollection: client.Database(database).Collection("products"),
	}
}

func (r *ProductsRepo) Create(ctx context.Context, product *model.Product) error {
	timer := utils.TrackDBOperation("insert", "products")
	defer timer.ObserveDuration()

	product.ID = uuid.New().String()
	product.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, product)
	return normalizeError("create product", err)
}

func (r *ProductsRepo) List(ctx context.Context) ([]*model.Product, error) {
	timer := utils.TrackDBOperation("find", "products")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, normalizeError("list products", err)
	}
	defer cursor.Close(ctx)

	var products []*model.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, normalizeError("list products", err)
	}
	return products, nil
}

func (r *ProductsRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Product, error) {
	timer := utils.TrackDBOperation("update", "products")
	defer timer.ObserveDuration()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product model.Product
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M(fields)}, opts).Decode(&product)
	if err != nil {
		return nil, normalizeError("update product", err)
	}
	return &product, nil
}

func (r *ProductsRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", "products")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return normalizeError("delete product", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
