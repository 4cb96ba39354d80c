package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

const customerCollection = "customers"

type MongoCustomerRepository struct {
	coll *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *MongoCustomerRepository {
	return &MongoCustomerRepository{coll: db.Collection(customerCollection)}
}

type mongoRole struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

type mongoCustomer struct {
	ID           string      `bson:"_id"`
	ClinicID     string      `bson:"clinic_id"`
	FirstName    string      `bson:"first_name"`
	LastName     string      `bson:"last_name"`
	Username     string      `bson:"username"`
	Email        string      `bson:"email"`
	PasswordHash string      `bson:"password_hash"`
	Address      string      `bson:"address,omitempty"`
	PhoneNumber  string      `bson:"phone_number,omitempty"`
	Gender       string      `bson:"gender,omitempty"`
	Roles        []mongoRole `bson:"roles"`
	LastSeen     int64       `bson:"last_seen"`
	CreatedAt    int64       `bson:"created_at"`
	UpdatedAt    int64       `bson:"updated_at"`
}

func (r *MongoCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	doc := mongoCustomer{
		ID:           c.ID,
		ClinicID:     c.ClinicID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Address:      c.Address,
		PhoneNumber:  c.PhoneNumber,
		Gender:       c.Gender,
		Roles:        toMongoRoles(c.Roles),
		LastSeen:     c.LastSeen.Unix(),
		CreatedAt:    c.CreatedAt.Unix(),
		UpdatedAt:    c.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		// The unique index covers (clinic_id, username); losing the race
		// after the service-level check still surfaces as a conflict.
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *MongoCustomerRepository) ExistsByUsername(ctx context.Context, clinicID, username string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"clinic_id": clinicID, "username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count customers by username: %w", err)
	}
	return n > 0, nil
}

func (r *MongoCustomerRepository) ExistsByEmail(ctx context.Context, clinicID, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"clinic_id": clinicID, "email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count customers by email: %w", err)
	}
	return n > 0, nil
}

func (r *MongoCustomerRepository) FindByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	var mc mongoCustomer
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoCustomerRepository) TouchLastSeen(ctx context.Context, id string, at time.Time) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_seen": at.Unix()}})
	if err != nil {
		return fmt.Errorf("touch last_seen: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *MongoCustomerRepository) List(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	query := bson.M{"clinic_id": filter.ClinicID}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []*domain.Customer
	for cursor.Next(ctx) {
		var mc mongoCustomer
		if err := cursor.Decode(&mc); err != nil {
			return nil, 0, fmt.Errorf("decode customer: %w", err)
		}
		customers = append(customers, mc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	return customers, total, nil
}

func (mc mongoCustomer) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:           mc.ID,
		ClinicID:     mc.ClinicID,
		FirstName:    mc.FirstName,
		LastName:     mc.LastName,
		Username:     mc.Username,
		Email:        mc.Email,
		PasswordHash: mc.PasswordHash,
		Address:      mc.Address,
		PhoneNumber:  mc.PhoneNumber,
		Gender:       mc.Gender,
		Roles:        toDomainRoles(mc.Roles),
		LastSeen:     unixToTime(mc.LastSeen),
		CreatedAt:    unixToTime(mc.CreatedAt),
		UpdatedAt:    unixToTime(mc.UpdatedAt),
	}
}

func toMongoRoles(roles []domain.Role) []mongoRole {
	out := make([]mongoRole, 0, len(roles))
	for _, r := range roles {
		out = append(out, mongoRole{ID: r.ID, Name: string(r.Name)})
	}
	return out
}

func toDomainRoles(roles []mongoRole) []domain.Role {
	out := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, domain.Role{ID: r.ID, Name: domain.RoleName(r.Name)})
	}
	return out
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
