package mongo

import (
	"context"
	"errors"
	"time"

	"facepass.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(ctx, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var result T
	err := repo.Model.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindByID", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindOneByFilter(ctx context.Context, filter map[string]interface{}, opts ...*options.FindOneOptions) (*T, error) {
	var result T
	err := repo.Model.FindOne(ctx, filter, opts...).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindMany(ctx context.Context, filter map[string]interface{}, opts ...*options.FindOptions) (*[]T, error) {
	cursor, err := repo.Model.Find(ctx, filter, opts...)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		logger.Error("mongo error occured while decoding FindMany results", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) CountDocs(ctx context.Context, filter map[string]interface{}) (int64, error) {
	count, err := repo.Model.CountDocuments(ctx, filter)
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return count, nil
}

// UpdatePartialByFilter applies a $set of the given fields to every document
// matching the filter and reports whether anything matched.
func (repo *MongoRepository[T]) UpdatePartialByFilter(ctx context.Context, filter map[string]interface{}, update map[string]interface{}) (bool, error) {
	update["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateMany(ctx, filter, bson.M{"$set": update})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// ConditionalUpdate is the compare-and-set primitive. The filter carries the
// expected preconditions; the raw update document is applied in a single
// conditional operation. Returns false when no document satisfied the filter.
func (repo *MongoRepository[T]) ConditionalUpdate(ctx context.Context, filter map[string]interface{}, update map[string]interface{}) (bool, error) {
	result, err := repo.Model.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.Error("mongo error occured while running ConditionalUpdate", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// WatchCollection opens a change stream and invokes snapshot on every change,
// pushing the full current result set to the returned channel. Consumers get
// complete replacements, never diffs. The channel closes when ctx ends.
func (repo *MongoRepository[T]) WatchCollection(ctx context.Context, snapshot func(context.Context) (*[]T, error)) (<-chan []T, error) {
	stream, err := repo.Model.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		logger.Error("mongo error occured while opening change stream", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	feed := make(chan []T, 1)
	if initial, err := snapshot(ctx); err == nil && initial != nil {
		feed <- *initial
	}
	go func() {
		defer close(feed)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			current, err := snapshot(ctx)
			if err != nil {
				logger.Error("error refreshing collection snapshot", logger.LoggerOptions{
					Key:  "error",
					Data: err,
				})
				continue
			}
			select {
			case feed <- *current:
			case <-ctx.Done():
				return
			}
		}
	}()
	return feed, nil
}

func (repo *MongoRepository[T]) StartTransaction(fn func(sc mongo.Session, c context.Context) error) error {
	session, err := repo.Model.Database().Client().StartSession()
	if err != nil {
		logger.Error("mongo error occured while starting session", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	defer session.EndSession(context.Background())
	return mongo.WithSession(context.Background(), session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return err
		}
		if err := fn(session, sc); err != nil {
			return err
		}
		return session.CommitTransaction(sc)
	})
}
