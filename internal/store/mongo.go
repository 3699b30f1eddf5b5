// server/internal/store/mongo.go
package store

import (
	"context"
	"fmt"
	"time"

	"global-track-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a MongoDB database. Multi-document
// operations run inside sessions, so the database must be a replica set
// (a single-node replica set is enough).
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{client: client, db: db}
}

func (m *MongoStore) shipments() *mongo.Collection { return m.db.Collection("shipments") }
func (m *MongoStore) proofs() *mongo.Collection    { return m.db.Collection("payment_proofs") }
func (m *MongoStore) stamps() *mongo.Collection    { return m.db.Collection("pdf_stamps") }
func (m *MongoStore) settings() *mongo.Collection  { return m.db.Collection("site_settings") }
func (m *MongoStore) users() *mongo.Collection     { return m.db.Collection("users") }

func (m *MongoStore) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// --- Shipments ---

func (m *MongoStore) InsertShipment(ctx context.Context, s *models.Shipment) error {
	result, err := m.shipments().InsertOne(ctx, s)
	if err != nil {
		// Unique index on trackingNumber, see database.EnsureIndexes.
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateTracking
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

func (m *MongoStore) GetShipment(ctx context.Context, id primitive.ObjectID) (models.Shipment, error) {
	var s models.Shipment
	err := m.shipments().FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return s, ErrNotFound
	}
	return s, err
}

func (m *MongoStore) GetShipmentByTracking(ctx context.Context, trackingNumber string) (models.Shipment, error) {
	var s models.Shipment
	err := m.shipments().FindOne(ctx, bson.M{"trackingNumber": trackingNumber}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return s, ErrNotFound
	}
	return s, err
}

func (m *MongoStore) UpdateShipment(ctx context.Context, s *models.Shipment) error {
	result, err := m.shipments().ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteShipment removes the shipment and its payment proof together.
func (m *MongoStore) DeleteShipment(ctx context.Context, id primitive.ObjectID) error {
	return m.withTransaction(ctx, func(sc mongo.SessionContext) error {
		result, err := m.shipments().DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return ErrNotFound
		}
		_, err = m.proofs().DeleteMany(sc, bson.M{"shipmentID": id})
		return err
	})
}

func (m *MongoStore) ListShipments(ctx context.Context, f ShipmentFilter) ([]models.Shipment, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.PaymentStatus != "" {
		filter["paymentStatus"] = f.PaymentStatus
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: f.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"trackingNumber": pattern},
			bson.M{"senderName": pattern},
			bson.M{"receiverName": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "dateCreated", Value: -1}})
	cursor, err := m.shipments().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shipments []models.Shipment
	if err = cursor.All(ctx, &shipments); err != nil {
		return nil, err
	}
	if shipments == nil {
		shipments = []models.Shipment{}
	}
	return shipments, nil
}

// --- Payment proofs ---

// UpsertProof replaces the proof for the shipment, keeping at most one
// proof per shipment. Unique index on shipmentID backs this up.
func (m *MongoStore) UpsertProof(ctx context.Context, p *models.PaymentProof) error {
	opts := options.Replace().SetUpsert(true)
	result, err := m.proofs().ReplaceOne(ctx, bson.M{"shipmentID": p.ShipmentID}, p, opts)
	if err != nil {
		return err
	}
	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		p.ID = oid
		return nil
	}
	// Replaced an existing document; fetch its id back.
	existing, err := m.GetProofByShipment(ctx, p.ShipmentID)
	if err != nil {
		return err
	}
	p.ID = existing.ID
	return nil
}

func (m *MongoStore) GetProof(ctx context.Context, id primitive.ObjectID) (models.PaymentProof, error) {
	var p models.PaymentProof
	err := m.proofs().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return p, ErrNotFound
	}
	return p, err
}

func (m *MongoStore) GetProofByShipment(ctx context.Context, shipmentID primitive.ObjectID) (models.PaymentProof, error) {
	var p models.PaymentProof
	err := m.proofs().FindOne(ctx, bson.M{"shipmentID": shipmentID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return p, ErrNotFound
	}
	return p, err
}

func (m *MongoStore) DeleteProof(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.proofs().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) ListProofs(ctx context.Context, verified bool) ([]models.PaymentProof, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateUploaded", Value: -1}})
	cursor, err := m.proofs().Find(ctx, bson.M{"isVerified": verified}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var proofs []models.PaymentProof
	if err = cursor.All(ctx, &proofs); err != nil {
		return nil, err
	}
	if proofs == nil {
		proofs = []models.PaymentProof{}
	}
	return proofs, nil
}

// VerifyProof flips the proof to verified and the shipment to paid as one
// transaction; a concurrent reader never sees one without the other.
func (m *MongoStore) VerifyProof(ctx context.Context, id primitive.ObjectID) error {
	return m.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var p models.PaymentProof
		err := m.proofs().FindOne(sc, bson.M{"_id": id}).Decode(&p)
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if _, err := m.proofs().UpdateOne(sc, bson.M{"_id": id},
			bson.M{"$set": bson.M{"isVerified": true}}); err != nil {
			return err
		}

		result, err := m.shipments().UpdateOne(sc, bson.M{"_id": p.ShipmentID},
			bson.M{"$set": bson.M{"paymentStatus": models.PaymentPaid, "lastUpdated": time.Now()}})
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// --- PDF stamps ---

func (m *MongoStore) InsertStamp(ctx context.Context, st *models.PDFStamp) error {
	result, err := m.stamps().InsertOne(ctx, st)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		st.ID = oid
	}
	return nil
}

func (m *MongoStore) GetStamp(ctx context.Context, id primitive.ObjectID) (models.PDFStamp, error) {
	var st models.PDFStamp
	err := m.stamps().FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return st, ErrNotFound
	}
	return st, err
}

func (m *MongoStore) UpdateStamp(ctx context.Context, st *models.PDFStamp) error {
	result, err := m.stamps().ReplaceOne(ctx, bson.M{"_id": st.ID}, st)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) DeleteStamp(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.stamps().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) ListStamps(ctx context.Context) ([]models.PDFStamp, error) {
	cursor, err := m.stamps().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stamps []models.PDFStamp
	if err = cursor.All(ctx, &stamps); err != nil {
		return nil, err
	}
	if stamps == nil {
		stamps = []models.PDFStamp{}
	}
	return stamps, nil
}

func (m *MongoStore) GetActiveStamp(ctx context.Context) (models.PDFStamp, error) {
	var st models.PDFStamp
	err := m.stamps().FindOne(ctx, bson.M{"isActive": true}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return st, ErrNotFound
	}
	return st, err
}

// ActivateStamp deactivates all stamps and activates the target inside a
// transaction.
func (m *MongoStore) ActivateStamp(ctx context.Context, id primitive.ObjectID) error {
	return m.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := m.stamps().UpdateMany(sc, bson.M{"isActive": true},
			bson.M{"$set": bson.M{"isActive": false}}); err != nil {
			return err
		}
		result, err := m.stamps().UpdateOne(sc, bson.M{"_id": id},
			bson.M{"$set": bson.M{"isActive": true, "updatedAt": time.Now()}})
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// --- Site settings ---

func (m *MongoStore) LoadSettings(ctx context.Context) (models.SiteSettings, error) {
	var s models.SiteSettings
	err := m.settings().FindOne(ctx, bson.M{}).Decode(&s)
	if err == nil {
		return s, nil
	}
	if err != mongo.ErrNoDocuments {
		return s, err
	}

	s = models.DefaultSiteSettings()
	result, err := m.settings().InsertOne(ctx, s)
	if err != nil {
		return s, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return s, nil
}

func (m *MongoStore) SaveSettings(ctx context.Context, s *models.SiteSettings) error {
	result, err := m.settings().ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Stats ---

func (m *MongoStore) Stats(ctx context.Context, weekAgo time.Time) (Stats, error) {
	stats := Stats{
		StatusCounts:        map[models.ShipmentStatus]int64{},
		PaymentStatusCounts: map[models.PaymentStatus]int64{},
	}

	var err error
	if stats.TotalShipments, err = m.shipments().CountDocuments(ctx, bson.M{}); err != nil {
		return stats, err
	}
	if stats.DeliveredShipments, err = m.shipments().CountDocuments(ctx, bson.M{"status": models.StatusDelivered}); err != nil {
		return stats, err
	}
	if stats.PendingProofs, err = m.proofs().CountDocuments(ctx, bson.M{"isVerified": false}); err != nil {
		return stats, err
	}
	if stats.WeeklyShipments, err = m.shipments().CountDocuments(ctx, bson.M{"dateCreated": bson.M{"$gte": weekAgo}}); err != nil {
		return stats, err
	}

	if stats.TotalRevenue, err = m.sumPaidRevenue(ctx, bson.M{"paymentStatus": models.PaymentPaid}); err != nil {
		return stats, err
	}
	if stats.WeeklyRevenue, err = m.sumPaidRevenue(ctx, bson.M{
		"paymentStatus": models.PaymentPaid,
		"dateCreated":   bson.M{"$gte": weekAgo},
	}); err != nil {
		return stats, err
	}

	statusCursor, err := m.shipments().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return stats, err
	}
	defer statusCursor.Close(ctx)
	for statusCursor.Next(ctx) {
		var row struct {
			ID    models.ShipmentStatus `bson:"_id"`
			Count int64                 `bson:"count"`
		}
		if err := statusCursor.Decode(&row); err != nil {
			return stats, err
		}
		stats.StatusCounts[row.ID] = row.Count
	}

	paymentCursor, err := m.shipments().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$paymentStatus", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return stats, err
	}
	defer paymentCursor.Close(ctx)
	for paymentCursor.Next(ctx) {
		var row struct {
			ID    models.PaymentStatus `bson:"_id"`
			Count int64                `bson:"count"`
		}
		if err := paymentCursor.Decode(&row); err != nil {
			return stats, err
		}
		stats.PaymentStatusCounts[row.ID] = row.Count
	}

	return stats, nil
}

func (m *MongoStore) sumPaidRevenue(ctx context.Context, match bson.M) (models.Money, error) {
	cursor, err := m.shipments().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalCost"}}}},
	})
	if err != nil {
		return models.Money{}, err
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			Total primitive.Decimal128 `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return models.Money{}, err
		}
		return models.NewMoney(row.Total.String())
	}
	return models.Money{}, cursor.Err()
}

// --- Users ---

func (m *MongoStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := m.users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return u, ErrNotFound
	}
	return u, err
}

func (m *MongoStore) InsertUser(ctx context.Context, u *models.User) error {
	result, err := m.users().InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (m *MongoStore) CountUsers(ctx context.Context) (int64, error) {
	return m.users().CountDocuments(ctx, bson.M{})
}
