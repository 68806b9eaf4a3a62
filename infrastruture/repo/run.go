package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-rl/domain"
	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.RunRepo = &RunRepo{}

// RunRepo handles the persistence of training runs.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts or replaces a run in the repository.
func (r *RunRepo) Save(run *domain.Run) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, run, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a run by its ID.
// Returns i.ErrNotFound if the run does not exist.
func (r *RunRepo) ByID(id uuid.UUID) (*domain.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var run domain.Run
	if err := r.collection.FindOne(ctx, filter).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &run, nil
}

// ByMaze retrieves the most recent runs of a maze, newest first.
func (r *RunRepo) ByMaze(mazeID uuid.UUID, limit int64) ([]*domain.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"mazeId": mazeID}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	runs := make([]*domain.Run, 0)
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return runs, nil
}
