package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoRepository connects to uri and ensures a unique index on
// file_name in database.collection.
func NewMongoRepository(ctx context.Context, uri, database, collection string) (Repository, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "file_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to create file_name index: %w", err)
	}

	return &mongoRepository{client: client, collection: coll}, client.Disconnect, nil
}

func (r *mongoRepository) Create(ctx context.Context, rec *models.MetadataRecord) error {
	doc := *rec
	doc.Summary = nil
	doc.Keywords = nil
	doc.ProcessedAt = nil

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			err = fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return &PersistenceError{Op: "create", Key: rec.FileName, Err: err}
	}
	return nil
}

func (r *mongoRepository) UpdateResults(ctx context.Context, fileName, summary string, keywords []string) error {
	if keywords == nil {
		keywords = []string{}
	}

	now := time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"file_name": fileName, "summary": nil},
		bson.M{"$set": bson.M{
			"summary":      summary,
			"keywords":     keywords,
			"processed_at": now,
			"updated_at":   now,
		}},
	)
	if err != nil {
		return &PersistenceError{Op: "update", Key: fileName, Err: err}
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := r.collection.CountDocuments(ctx, bson.M{"file_name": fileName})
	if err != nil {
		return &PersistenceError{Op: "update", Key: fileName, Err: err}
	}
	if n == 0 {
		return &PersistenceError{Op: "update", Key: fileName, Err: ErrNotFound}
	}
	return &PersistenceError{Op: "update", Key: fileName, Err: ErrAlreadyProcessed}
}

func (r *mongoRepository) GetByFileName(ctx context.Context, fileName string) (*models.MetadataRecord, error) {
	var rec models.MetadataRecord

	err := r.collection.FindOne(ctx, bson.M{"file_name": fileName}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get", Key: fileName, Err: err}
	}
	return &rec, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]models.MetadataRecord, error) {
	cur, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "file_name", Value: 1}}))
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}

	records := []models.MetadataRecord{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return records, nil
}

func (r *mongoRepository) Delete(ctx context.Context, fileName string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"file_name": fileName}); err != nil {
		return &PersistenceError{Op: "delete", Key: fileName, Err: err}
	}
	return nil
}
