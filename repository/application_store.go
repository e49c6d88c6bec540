package repository

import (
	"context"
	"time"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoApplicationStore adapter for the CrediExpress application
// collection. Applications are partner-owned and read-mostly here: the
// only CRM-side writes are the crmStatus shadow field and the terminal
// status write-back performed by the reconciliation service.
type MongoApplicationStore struct{}

// NewApplicationStore creates the application store adapter
func NewApplicationStore() *MongoApplicationStore {
	return &MongoApplicationStore{}
}

func (s *MongoApplicationStore) coll() *mongo.Collection {
	return Collection(ApplicationsCollection)
}

// FetchAll returns every application, newest created first
func (s *MongoApplicationStore) FetchAll(ctx context.Context) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := s.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}

	return apps, nil
}

// Get returns one application by its CrediExpress native id
func (s *MongoApplicationStore) Get(ctx context.Context, nativeID string) (*models.Application, error) {
	var app models.Application
	err := s.coll().FindOne(ctx, bson.M{"nativeId": nativeID}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("La solicitud")
		}
		return nil, utils.NewStoreUnavailableError(err)
	}

	return &app, nil
}

// Insert stores a new application coming in from the partner intake flow
func (s *MongoApplicationStore) Insert(ctx context.Context, app models.Application) (string, error) {
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}

	if _, err := s.coll().InsertOne(ctx, app); err != nil {
		return "", utils.NewStoreUnavailableError(err)
	}

	return app.ID, nil
}

// UpdateStatus writes the partner-owned status field. Reserved for the
// terminal pipeline outcomes; everything else stays in crmStatus.
func (s *MongoApplicationStore) UpdateStatus(ctx context.Context, nativeID string, status models.ApplicationStatus) error {
	result, err := s.coll().UpdateOne(
		ctx,
		bson.M{"nativeId": nativeID},
		bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	if result.MatchedCount == 0 {
		return utils.CreateNotFoundError("La solicitud")
	}

	return nil
}

// SetCRMStatus writes the internal shadow of the pipeline status without
// touching the partner-owned status field.
func (s *MongoApplicationStore) SetCRMStatus(ctx context.Context, nativeID string, status models.LeadStatus) error {
	result, err := s.coll().UpdateOne(
		ctx,
		bson.M{"nativeId": nativeID},
		bson.M{"$set": bson.M{
			"crmStatus": status,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	if result.MatchedCount == 0 {
		return utils.CreateNotFoundError("La solicitud")
	}

	return nil
}

// Subscribe watches the application collection and re-delivers the full
// current snapshot on every change. Same contract as the lead store.
func (s *MongoApplicationStore) Subscribe(onChange func([]models.Application)) (func(), error) {
	watchCtx, cancel := context.WithCancel(context.Background())

	stream, err := s.coll().Watch(watchCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, utils.NewStoreUnavailableError(err)
	}

	sub := newSubscription(cancel)

	deliver := func() {
		if !sub.active() {
			return
		}
		snapshot, err := s.FetchAll(context.Background())
		if err != nil {
			utils.LogError(err, map[string]interface{}{"collection": ApplicationsCollection}, "snapshot fetch failed, delivery skipped")
			return
		}
		if !sub.active() {
			return
		}
		onChange(snapshot)
	}

	go func() {
		deliver()
		for {
			for stream.Next(watchCtx) {
				deliver()
			}
			err := stream.Err()
			stream.Close(context.Background())

			if watchCtx.Err() != nil {
				return
			}
			if !IsTransientError(err) {
				utils.LogError(err, map[string]interface{}{"collection": ApplicationsCollection}, "change stream closed")
				return
			}

			utils.LogError(err, map[string]interface{}{"collection": ApplicationsCollection}, "change stream interrupted, reopening")
			time.Sleep(time.Second)
			stream, err = s.coll().Watch(watchCtx, mongo.Pipeline{})
			if err != nil {
				utils.LogError(err, map[string]interface{}{"collection": ApplicationsCollection}, "change stream reopen failed")
				return
			}
			deliver()
		}
	}()

	return sub.Stop, nil
}
