package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
)

const roleCollection = "roles"

type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{coll: db.Collection(roleCollection)}
}

type mongoRoleDoc struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func (r *MongoRoleRepository) FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	var doc mongoRoleDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": string(name)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{ID: doc.ID, Name: domain.RoleName(doc.Name)}, nil
}

// EnsureCanonicalRoles seeds any missing canonical role, then reads each one
// back. Run once at startup so role resolution can treat a missing role as
// fatal misconfiguration rather than a recoverable condition.
func (r *MongoRoleRepository) EnsureCanonicalRoles(ctx context.Context) error {
	for _, name := range domain.CanonicalRoles {
		filter := bson.M{"name": string(name)}
		update := bson.M{"$setOnInsert": bson.M{"_id": uuid.NewString(), "name": string(name)}}
		if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
		if _, err := r.FindByName(ctx, name); err != nil {
			return fmt.Errorf("verify role %s: %w", name, err)
		}
	}
	return nil
}
