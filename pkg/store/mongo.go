package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"podclip/pkg/domain"
)

// Mongo persists clips and notes in two MongoDB collections. Writes are
// id-keyed upserts, so CreateClip/SaveClip share one code path.
type Mongo struct {
	mongoClient *mongo.Client
	clips       *mongo.Collection
	notes       *mongo.Collection
}

// NewMongo creates a Mongo store client.
func NewMongo(connectionString, databaseName string) *Mongo {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Mongo{}
	}

	database := mongoClient.Database(databaseName)

	return &Mongo{
		mongoClient: mongoClient,
		clips:       database.Collection("podcast_clips"),
		notes:       database.Collection("notes"),
	}
}

// Connect establishes connection to MongoDB
func (m *Mongo) Connect(ctx context.Context) error {
	if m.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return m.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (m *Mongo) Close(ctx context.Context) error {
	if m.mongoClient == nil {
		return nil
	}
	return m.mongoClient.Disconnect(ctx)
}

// CreateClip upserts the clip by id.
func (m *Mongo) CreateClip(ctx context.Context, clip *domain.PodcastClip) error {
	return m.upsert(ctx, m.clips, clip.ID, clip)
}

// SaveClip upserts the clip by id.
func (m *Mongo) SaveClip(ctx context.Context, clip *domain.PodcastClip) error {
	return m.upsert(ctx, m.clips, clip.ID, clip)
}

// CreateNote upserts the note by id.
func (m *Mongo) CreateNote(ctx context.Context, note *domain.Note) error {
	return m.upsert(ctx, m.notes, note.ID, note)
}

func (m *Mongo) upsert(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	if coll == nil {
		return fmt.Errorf("collection not initialized")
	}

	filter := bson.M{"_id": id}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	_, err := coll.UpdateOne(ctx, filter, update, opts)
	return err
}
