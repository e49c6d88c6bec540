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

// MongoLeadStore CRM-side lead collection adapter. Reads come back in
// creation order, newest first; Subscribe re-delivers the full ordered
// snapshot on every observed change, never a diff.
type MongoLeadStore struct{}

// NewLeadStore creates the CRM lead store adapter
func NewLeadStore() *MongoLeadStore {
	return &MongoLeadStore{}
}

func (s *MongoLeadStore) coll() *mongo.Collection {
	return Collection(LeadsCollection)
}

// FetchAll returns every CRM lead, newest created first
func (s *MongoLeadStore) FetchAll(ctx context.Context) ([]models.Lead, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := s.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err = cursor.All(ctx, &leads); err != nil {
		return nil, utils.NewStoreUnavailableError(err)
	}

	for i := range leads {
		leads[i].ID = leads[i].OID.Hex()
	}

	return leads, nil
}

// Get returns one CRM lead by id
func (s *MongoLeadStore) Get(ctx context.Context, id string) (*models.Lead, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.CreateBadRequestError("id de lead inválido")
	}

	var lead models.Lead
	err = s.coll().FindOne(ctx, bson.M{"_id": objID}).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("El lead")
		}
		return nil, utils.NewStoreUnavailableError(err)
	}

	lead.ID = lead.OID.Hex()
	return &lead, nil
}

// Insert creates a CRM lead and returns the store-assigned id
func (s *MongoLeadStore) Insert(ctx context.Context, lead models.Lead) (string, error) {
	now := time.Now()
	lead.OID = primitive.NilObjectID
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if lead.Status == "" {
		lead.Status = models.LeadStatusNuevo
	}
	if lead.Prioridad == "" {
		lead.Prioridad = models.LeadPriorityMedia
	}
	if lead.FechaCreacion == "" {
		lead.FechaCreacion = now.Format("2006-01-02")
	}

	result, err := s.coll().InsertOne(ctx, lead)
	if err != nil {
		return "", utils.NewStoreUnavailableError(err)
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Update applies a partial update to a CRM lead
func (s *MongoLeadStore) Update(ctx context.Context, id string, patch models.LeadPatch) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.CreateBadRequestError("id de lead inválido")
	}

	set := patchToBson(patch)
	set["updatedAt"] = time.Now()
	set["fechaUltimoContacto"] = time.Now().Format("2006-01-02")

	result, err := s.coll().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	if result.MatchedCount == 0 {
		return utils.CreateNotFoundError("El lead")
	}

	return nil
}

// UpdateStatus writes the pipeline status of a CRM lead
func (s *MongoLeadStore) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.CreateBadRequestError("id de lead inválido")
	}

	set := bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}
	if status == models.LeadStatusGanado {
		set["fechaCierre"] = time.Now().Format("2006-01-02")
	}

	result, err := s.coll().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	if result.MatchedCount == 0 {
		return utils.CreateNotFoundError("El lead")
	}

	return nil
}

// Delete removes a CRM lead
func (s *MongoLeadStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.CreateBadRequestError("id de lead inválido")
	}

	result, err := s.coll().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return utils.NewStoreUnavailableError(err)
	}
	if result.DeletedCount == 0 {
		return utils.CreateNotFoundError("El lead")
	}

	return nil
}

// Subscribe watches the lead collection and re-delivers the full current
// snapshot on every change. The returned handle is idempotent; once it
// returns, no further deliveries begin.
func (s *MongoLeadStore) Subscribe(onChange func([]models.Lead)) (func(), error) {
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
			// transient failure: skip this delivery, keep the watch alive
			utils.LogError(err, map[string]interface{}{"collection": LeadsCollection}, "snapshot fetch failed, delivery skipped")
			return
		}
		if !sub.active() {
			return
		}
		onChange(snapshot)
	}

	go func() {
		deliver() // initial snapshot
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
				utils.LogError(err, map[string]interface{}{"collection": LeadsCollection}, "change stream closed")
				return
			}

			// recoverable interruption, reopen the watch
			utils.LogError(err, map[string]interface{}{"collection": LeadsCollection}, "change stream interrupted, reopening")
			time.Sleep(time.Second)
			stream, err = s.coll().Watch(watchCtx, mongo.Pipeline{})
			if err != nil {
				utils.LogError(err, map[string]interface{}{"collection": LeadsCollection}, "change stream reopen failed")
				return
			}
			deliver()
		}
	}()

	return sub.Stop, nil
}

// patchToBson maps the set fields of a LeadPatch onto an update document
func patchToBson(patch models.LeadPatch) bson.M {
	set := bson.M{}
	if patch.FullName != nil {
		set["fullName"] = *patch.FullName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.IDNumber != nil {
		set["idNumber"] = *patch.IDNumber
	}
	if patch.MaritalStatus != nil {
		set["maritalStatus"] = *patch.MaritalStatus
	}
	if patch.VehicleAmount != nil {
		set["vehicleAmount"] = *patch.VehicleAmount
	}
	if patch.DownPaymentPct != nil {
		set["downPaymentPct"] = *patch.DownPaymentPct
	}
	if patch.TermMonths != nil {
		set["termMonths"] = *patch.TermMonths
	}
	if patch.Prioridad != nil {
		set["prioridad"] = *patch.Prioridad
	}
	if patch.AsignadoA != nil {
		set["asignadoA"] = *patch.AsignadoA
	}
	if patch.VehiculoInteres != nil {
		set["vehiculoInteres"] = *patch.VehiculoInteres
	}
	if patch.Observaciones != nil {
		set["observaciones"] = *patch.Observaciones
	}
	if patch.MotivoPerdida != nil {
		set["motivoPerdida"] = *patch.MotivoPerdida
	}
	if patch.MontoFinal != nil {
		set["montoFinal"] = *patch.MontoFinal
	}
	return set
}
