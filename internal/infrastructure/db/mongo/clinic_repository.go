package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
)

const clinicCollection = "clinics"

type MongoClinicRepository struct {
	coll *mongo.Collection
}

func NewClinicRepository(db *mongo.Database) *MongoClinicRepository {
	return &MongoClinicRepository{coll: db.Collection(clinicCollection)}
}

type mongoClinic struct {
	ID           string      `bson:"_id"`
	Name         string      `bson:"name"`
	Email        string      `bson:"email"`
	PasswordHash string      `bson:"password_hash"`
	Roles        []mongoRole `bson:"roles"`
	CreatedAt    int64       `bson:"created_at"`
	UpdatedAt    int64       `bson:"updated_at"`
}

func (r *MongoClinicRepository) Create(ctx context.Context, c *domain.Clinic) error {
	doc := mongoClinic{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Roles:        toMongoRoles(c.Roles),
		CreatedAt:    c.CreatedAt.Unix(),
		UpdatedAt:    c.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrClinicNameTaken
		}
		return fmt.Errorf("insert clinic: %w", err)
	}
	return nil
}

func (r *MongoClinicRepository) FindByID(ctx context.Context, id string) (*domain.Clinic, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoClinicRepository) FindByName(ctx context.Context, name string) (*domain.Clinic, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *MongoClinicRepository) findOne(ctx context.Context, query bson.M) (*domain.Clinic, error) {
	var mc mongoClinic
	if err := r.coll.FindOne(ctx, query).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClinicNotFound
		}
		return nil, fmt.Errorf("find clinic: %w", err)
	}

	return &domain.Clinic{
		ID:           mc.ID,
		Name:         mc.Name,
		Email:        mc.Email,
		PasswordHash: mc.PasswordHash,
		Roles:        toDomainRoles(mc.Roles),
		CreatedAt:    unixToTime(mc.CreatedAt),
		UpdatedAt:    unixToTime(mc.UpdatedAt),
	}, nil
}

func (r *MongoClinicRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, bson.M{"name": name})
}

func (r *MongoClinicRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *MongoClinicRepository) exists(ctx context.Context, query bson.M) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count clinics: %w", err)
	}
	return n > 0, nil
}
