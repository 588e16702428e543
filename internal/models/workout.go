package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a single workout record stored in MongoDB. The owning user id
// is assigned from the authenticated caller at creation and is never
// settable through the API. Load and reps arrive from the frontend as
// strings and are stored as-is.
type Workout struct {
	ID        primitive.ObjectID `json:"_id"       bson:"_id,omitempty"`
	Title     string             `json:"title"     bson:"title"`
	Load      string             `json:"load"      bson:"load"`
	Reps      string             `json:"reps"      bson:"reps"`
	UserID    string             `json:"user_id"   bson:"user_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateWorkoutRequest is the JSON body for POST /api/workouts.
type CreateWorkoutRequest struct {
	Title string `json:"title"`
	Load  string `json:"load"`
	Reps  string `json:"reps"`
}

// WorkoutExport is the snapshot uploaded to object storage by the export
// endpoint.
type WorkoutExport struct {
	UserID     string    `json:"user_id"`
	ExportedAt time.Time `json:"exported_at"`
	Count      int       `json:"count"`
	Workouts   []Workout `json:"workouts"`
}
