package repository

import (
	"context"
	"time"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoActivityStore adapter for the per-lead activity timeline
type MongoActivityStore struct{}

// NewActivityStore creates the activity store adapter
func NewActivityStore() *MongoActivityStore {
	return &MongoActivityStore{}
}

func (s *MongoActivityStore) coll() *mongo.Collection {
	return Collection(ActivitiesCollection)
}

// Insert stores one activity and returns its id
func (s *MongoActivityStore) Insert(ctx context.Context, activity models.Activity) (string, error) {
	activity.OID = primitive.NilObjectID
	activity.CreatedAt = time.Now()
	if activity.Fecha == "" {
		activity.Fecha = time.Now().Format(time.RFC3339)
	}

	result, err := s.coll().InsertOne(ctx, activity)
	if err != nil {
		return "", utils.NewStoreUnavailableError(err)
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// ListByLead returns the activities of one lead, newest first
func (s *MongoActivityStore) ListByLead(ctx context.Context, leadID string) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.M{"fecha": -1})

	cursor, err := s.coll().Find(ctx, bson.M{"leadId": leadID}, opts)
	if err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}

	for i := range activities {
		activities[i].ID = activities[i].OID.Hex()
	}

	return activities, nil
}
