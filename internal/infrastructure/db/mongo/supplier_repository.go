package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/supplyline/scm-console/internal/core/domain"
)

const suppliersCollection = "suppliers"

type SupplierRepository struct {
	coll *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{coll: db.Collection(suppliersCollection)}
}

func (r *SupplierRepository) List(ctx context.Context) ([]*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer cur.Close(ctx)

	var suppliers []*domain.Supplier
	if err := cur.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("decode suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Supplier
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepository) Update(ctx context.Context, s *domain.Supplier) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
