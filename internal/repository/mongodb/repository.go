package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/repository"
)

const (
	recordsCollection  = "saved_rations"
	countersCollection = "counters"
	recordsCounterID   = "saved_rations"
)

// MongoDBRepository implements repository.RecordStore for MongoDB. Numeric ids come
// from a counters document so exported records keep the same ids as the other stores.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{client: client, dbName: dbName}

	_, err = repo.records().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create timestamp index: %w", err)
	}

	return repo, nil
}

func (r *MongoDBRepository) records() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(recordsCollection)
}

func (r *MongoDBRepository) counters() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(countersCollection)
}

// nextID atomically increments and returns the record sequence.
func (r *MongoDBRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters().FindOneAndUpdate(ctx,
		bson.M{"_id": recordsCounterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate record id: %w", err)
	}
	return counter.Seq, nil
}

// Create saves a new record and returns its id.
func (r *MongoDBRepository) Create(ctx context.Context, record models.SavedRecord) (int64, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return 0, err
	}
	record.ID = id

	if _, err := r.records().InsertOne(ctx, record); err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}
	return id, nil
}

// Update replaces an existing record.
func (r *MongoDBRepository) Update(ctx context.Context, record models.SavedRecord) error {
	res, err := r.records().ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return fmt.Errorf("failed to update record %d: %w", record.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update record %d: %w", record.ID, repository.ErrNotFound)
	}
	return nil
}

// Get loads one record.
func (r *MongoDBRepository) Get(ctx context.Context, id int64) (models.SavedRecord, error) {
	var rec models.SavedRecord
	err := r.records().FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rec, fmt.Errorf("get record %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("failed to load record %d: %w", id, err)
	}
	return rec, nil
}

// List returns every record, newest first.
func (r *MongoDBRepository) List(ctx context.Context) ([]models.SavedRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.records().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	out := []models.SavedRecord{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return out, nil
}

// Delete removes one record.
func (r *MongoDBRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.records().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete record %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

// ReplaceAll drops every record and inserts the given set, then sets the id
// sequence to the largest imported id. Standalone servers have no multi-document
// transactions, so a failure part way leaves a partial set.
func (r *MongoDBRepository) ReplaceAll(ctx context.Context, records []models.SavedRecord) error {
	incoming := append([]models.SavedRecord(nil), records...)
	maxID := repository.AssignMissingIDs(incoming)

	if _, err := r.records().DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	if len(incoming) > 0 {
		docs := make([]interface{}, len(incoming))
		for i, rec := range incoming {
			docs[i] = rec
		}
		if _, err := r.records().InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert records: %w", err)
		}
	}

	_, err := r.counters().UpdateOne(ctx,
		bson.M{"_id": recordsCounterID},
		bson.M{"$set": bson.M{"seq": maxID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to advance record sequence: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
