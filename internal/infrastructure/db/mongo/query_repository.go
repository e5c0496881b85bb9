package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skycast/weather-api/internal/core/domain"
)

const queriesCollection = "weather_queries"

// MongoQueryRepository persists the append-only weather-query ledger.
type MongoQueryRepository struct {
	coll *mongo.Collection
}

func NewQueryRepository(db *mongo.Database) *MongoQueryRepository {
	return &MongoQueryRepository{coll: db.Collection(queriesCollection)}
}

type mongoQuery struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	City      string             `bson:"city"`
	Result    string             `bson:"result"`
	UserID    string             `bson:"user_id"`
	QueriedAt int64              `bson:"queried_at"`
}

func (mq *mongoQuery) toDomain() *domain.WeatherQuery {
	return &domain.WeatherQuery{
		ID:        mq.ID.Hex(),
		City:      mq.City,
		Result:    mq.Result,
		UserID:    mq.UserID,
		QueriedAt: unixToTime(mq.QueriedAt),
	}
}

func (r *MongoQueryRepository) Append(ctx context.Context, query *domain.WeatherQuery) (*domain.WeatherQuery, error) {
	doc := mongoQuery{
		ID:        primitive.NewObjectID(),
		City:      query.City,
		Result:    query.Result,
		UserID:    query.UserID,
		QueriedAt: query.QueriedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("append query: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoQueryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WeatherQuery, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoQueryRepository) ListAll(ctx context.Context) ([]*domain.WeatherQuery, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoQueryRepository) list(ctx context.Context, filter bson.M) ([]*domain.WeatherQuery, error) {
	opts := options.Find().SetSort(bson.D{{Key: "queried_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.WeatherQuery
	for cur.Next(ctx) {
		var mq mongoQuery
		if err := cur.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode query: %w", err)
		}
		out = append(out, mq.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	return out, nil
}
