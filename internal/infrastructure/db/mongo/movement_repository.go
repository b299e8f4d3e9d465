package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
)

const collectionMovements = "stock_movements"

// MovementRepository stores the stock audit trail. Entries are append-only
// and outlive the sweet they refer to.
type MovementRepository struct {
	col *mongo.Collection
}

func NewMovementRepository(db *mongo.Database) *MovementRepository {
	return &MovementRepository{col: db.Collection(collectionMovements)}
}

type mongoMovement struct {
	ID            primitive.ObjectID `bson:"_id"`
	SweetID       primitive.ObjectID `bson:"sweet_id"`
	Kind          string             `bson:"kind"`
	Amount        int                `bson:"amount"`
	QuantityAfter int                `bson:"quantity_after"`
	Actor         string             `bson:"actor"`
	At            time.Time          `bson:"at"`
	RecordedAt    time.Time          `bson:"recorded_at"`
}

func (m *mongoMovement) toDomain() *domain.StockMovement {
	return &domain.StockMovement{
		SweetID:       m.SweetID.Hex(),
		Kind:          domain.MovementKind(m.Kind),
		Amount:        m.Amount,
		QuantityAfter: m.QuantityAfter,
		Actor:         m.Actor,
		At:            m.At.UTC(),
	}
}

func (r *MovementRepository) Insert(ctx context.Context, m *domain.StockMovement) error {
	sweetID, err := parseID(m.SweetID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMovement{
		ID:            primitive.NewObjectID(),
		SweetID:       sweetID,
		Kind:          string(m.Kind),
		Amount:        m.Amount,
		QuantityAfter: m.QuantityAfter,
		Actor:         m.Actor,
		At:            m.At.UTC(),
		RecordedAt:    time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepository) ListBySweet(ctx context.Context, sweetID string, limit int) ([]*domain.StockMovement, error) {
	oid, err := parseID(sweetID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, bson.M{"sweet_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoMovement
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movements: %w", err)
	}

	out := make([]*domain.StockMovement, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *MovementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sweet_id", Value: 1}, {Key: "at", Value: -1}},
	})
	return err
}
