package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/servicescan/pkg/collector"
	"github.com/matzehuels/servicescan/pkg/httputil"
)

// Defaults for MongoConfig.
const (
	DefaultDatabase   = "servicescan"
	DefaultCollection = "runs"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps runs in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	runs   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore connects to MongoDB and verifies the connection. The ping is
// retried with backoff so a server that is still starting is tolerated.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: empty URI")
	}
	db := cfg.Database
	if db == "" {
		db = DefaultDatabase
	}
	coll := cfg.Collection
	if coll == "" {
		coll = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	err = httputil.RetryWithBackoff(ctx, func() error {
		return httputil.Retryable(client.Ping(ctx, nil))
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoStore{client: client, runs: client.Database(db).Collection(coll)}, nil
}

// Save upserts the run document.
func (s *MongoStore) Save(ctx context.Context, res *collector.Result) error {
	doc := toDocument(res)
	_, err := s.runs.ReplaceOne(ctx, bson.M{"_id": doc.RunID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save run %s: %w", doc.RunID, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, runID string) (*collector.Result, error) {
	var doc runDocument
	err := s.runs.FindOne(ctx, bson.M{"_id": runID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	return fromDocument(doc), nil
}

func (s *MongoStore) Recent(ctx context.Context, limit int) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "collected_at", Value: -1}}).
		SetProjection(bson.M{"projects": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.runs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	var docs []runDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	out := make([]Summary, 0, len(docs))
	for _, d := range docs {
		out = append(out, summaryOf(d))
	}
	return out, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func summaryOf(d runDocument) Summary {
	return Summary{
		RunID:       d.RunID,
		Group:       d.Group,
		CollectedAt: d.CollectedAt,
		Stats:       collector.Stats(d.Stats),
	}
}
