// repositories/mongo.go
package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/serenemind/portal_backend/models"
)

// MongoAccountRepository implements AccountRepository on MongoDB
type MongoAccountRepository struct {
	collection *mongo.Collection
}

func NewMongoAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{
		collection: db.Collection("accounts"),
	}
}

func (r *MongoAccountRepository) Get(ctx context.Context, kind models.AccountKind, email string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"kind": kind, "email": email}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *MongoAccountRepository) Put(ctx context.Context, account *models.Account) error {
	filter := bson.M{"kind": account.Kind, "email": account.Email}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, account, opts)
	return err
}

func (r *MongoAccountRepository) Delete(ctx context.Context, kind models.AccountKind, email string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"kind": kind, "email": email})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAccountRepository) List(ctx context.Context, kind models.AccountKind) ([]models.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"kind": kind}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *MongoAccountRepository) Count(ctx context.Context, kind models.AccountKind) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"kind": kind})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// MongoOTPRepository implements OTPRepository on MongoDB
type MongoOTPRepository struct {
	collection *mongo.Collection
}

func NewMongoOTPRepository(db *mongo.Database) *MongoOTPRepository {
	return &MongoOTPRepository{
		collection: db.Collection("pending_otps"),
	}
}

func (r *MongoOTPRepository) Get(ctx context.Context, kind models.AccountKind, email string) (*models.PendingOTP, error) {
	var otp models.PendingOTP
	err := r.collection.FindOne(ctx, bson.M{"kind": kind, "email": email}).Decode(&otp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (r *MongoOTPRepository) Put(ctx context.Context, otp *models.PendingOTP) error {
	filter := bson.M{"kind": otp.Kind, "email": otp.Email}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, otp, opts)
	return err
}

func (r *MongoOTPRepository) Delete(ctx context.Context, kind models.AccountKind, email string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"kind": kind, "email": email})
	return err
}

// MongoAppointmentRepository implements AppointmentRepository on MongoDB
type MongoAppointmentRepository struct {
	collection *mongo.Collection
}

func NewMongoAppointmentRepository(db *mongo.Database) *MongoAppointmentRepository {
	return &MongoAppointmentRepository{
		collection: db.Collection("appointments"),
	}
}

func (r *MongoAppointmentRepository) Put(ctx context.Context, appointment *models.Appointment) error {
	filter := bson.M{"_id": appointment.ID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, appointment, opts)
	return err
}

func (r *MongoAppointmentRepository) ListByEmail(ctx context.Context, email string) ([]models.Appointment, error) {
	filter := bson.M{}
	if email != "" {
		filter = bson.M{"$or": []bson.M{
			{"patientEmail": email},
			{"doctorEmail": email},
		}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *MongoAppointmentRepository) Count(ctx context.Context) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
