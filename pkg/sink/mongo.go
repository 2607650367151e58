package sink

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "storyswift"
	DefaultMongoCollection = "units"
)

// MongoConfig configures a MongoSink.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	// RunID groups the units of one conversion. Empty means a new UUID.
	RunID string
}

// MongoSink upserts one document per unit, keyed by run and unit name.
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
	runID  string
	now    func() time.Time
}

// UnitDocument is the stored form of a unit.
type UnitDocument struct {
	RunID     string    `bson:"run_id"`
	Name      string    `bson:"name"`
	Source    string    `bson:"source"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoSink connects to cfg.URI and verifies the connection.
func NewMongoSink(ctx context.Context, cfg MongoConfig) (*MongoSink, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := cfg.Database
	if db == "" {
		db = DefaultMongoDatabase
	}
	coll := cfg.Collection
	if coll == "" {
		coll = DefaultMongoCollection
	}
	s := NewMongoSinkFromCollection(client.Database(db).Collection(coll), cfg.RunID)
	s.client = client
	return s, nil
}

// NewMongoSinkFromCollection writes to an existing collection. Close does
// not disconnect the collection's client.
func NewMongoSinkFromCollection(coll *mongo.Collection, runID string) *MongoSink {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &MongoSink{coll: coll, runID: runID, now: time.Now}
}

// Kind returns "mongo".
func (s *MongoSink) Kind() string { return "mongo" }

// RunID identifies this run.
func (s *MongoSink) RunID() string { return s.runID }

// Location returns "<run_id>/<name>".
func (s *MongoSink) Location(name string) string { return s.runID + "/" + name }

// WriteUnit inserts or replaces the unit's document.
func (s *MongoSink) WriteUnit(ctx context.Context, name, text string) error {
	_, err := s.coll.UpdateOne(ctx,
		unitFilter(s.runID, name),
		unitUpdate(text, s.now().UTC()),
		options.Update().SetUpsert(true))
	return err
}

// Close disconnects the client opened by NewMongoSink.
func (s *MongoSink) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

func unitFilter(runID, name string) bson.D {
	return bson.D{{Key: "run_id", Value: runID}, {Key: "name", Value: name}}
}

func unitUpdate(text string, now time.Time) bson.D {
	return bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "source", Value: text},
			{Key: "updated_at", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "created_at", Value: now}}},
	}
}
