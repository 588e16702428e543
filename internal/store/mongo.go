package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rohan/workout-buddy/internal/models"
)

// MongoStore handles workout CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("workouts")}
}

func (s *MongoStore) Insert(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("mongo insert: %w", err)
	}
	w.ID = res.InsertedID.(primitive.ObjectID)
	return w, nil
}

func (s *MongoStore) ListByOwner(ctx context.Context, userID string) ([]models.Workout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var workouts []models.Workout
	if err := cur.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*models.Workout, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var w models.Workout
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Update applies a partial $set of the supplied fields and returns the
// record as it was before the update (the driver's default return mode,
// kept deliberately: existing clients rely on receiving the previous
// state).
func (s *MongoStore) Update(ctx context.Context, id string, fields bson.M) (*models.Workout, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	fields["updatedAt"] = time.Now().UTC()

	var w models.Workout
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Delete removes the record and returns it.
func (s *MongoStore) Delete(ctx context.Context, id string) (*models.Workout, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var w models.Workout
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}
