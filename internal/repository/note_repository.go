package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "notekeeper/internal/errors"
	"notekeeper/internal/model"
)

// NoteRepository defines note persistence operations. Mutations are
// conditional on ownership so that the ownership check and the write are a
// single atomic store operation.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]model.Note, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Note, error)
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, fields bson.M) (bool, error)
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (bool, error)
}

type noteRepository struct {
	col *mongo.Collection
}

// NewNoteRepository builds a Mongo-backed note repository.
func NewNoteRepository(db *mongo.Database) NoteRepository {
	return &noteRepository{col: db.Collection("notes")}
}

// Create inserts a new note.
func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, note)
	return err
}

// ListByOwner returns all notes owned by the given user, in insertion order.
func (r *noteRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]model.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"userID": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notes []model.Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// FindByID finds a note by id regardless of owner.
func (r *noteRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Note, error) {
	var note model.Note
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&note); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// UpdateOwned applies a partial field patch to the note only if it is owned
// by the given user. Returns false when no owned note matched.
func (r *noteRepository) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, fields bson.M) (bool, error) {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "userID": owner},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// DeleteOwned removes the note only if it is owned by the given user.
// Returns false when no owned note matched.
func (r *noteRepository) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "userID": owner})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
