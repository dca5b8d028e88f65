package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whizpalsdeveloper/NotesApp/model"
)

// NotesRepo is the MongoDB-backed NoteStore. One document per note,
// keyed by a UUID string _id.
type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client, dbName string) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(dbName).Collection("notes"),
	}
}

// SetupIndexes creates the indexes the list queries rely on.
func (r *NotesRepo) SetupIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("notes_created_at"),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("notes_updated_at"),
		},
	}

	if _, err := r.MongoCollection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}
	return nil
}

func (r *NotesRepo) FindNotes(ctx context.Context, filter NoteFilter) ([]*model.Note, error) {
	query := bson.M{}

	if filter.Query != "" {
		// QuoteMeta keeps the substring match literal
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": pattern}},
			{"content": bson.M{"$regex": pattern}},
		}
	}

	created := bson.M{}
	if !filter.DateFrom.IsZero() {
		created["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		created["$lte"] = filter.DateTo
	}
	if len(created) > 0 {
		query["created_at"] = created
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NotesRepo) GetNote(ctx context.Context, id string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *NotesRepo) InsertNote(ctx context.Context, note *model.Note) (*model.Note, error) {
	stored := note.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if _, err := r.MongoCollection.InsertOne(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *NotesRepo) UpdateNote(ctx context.Context, id string, update NoteUpdate) (*model.Note, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}

	return r.findOneAndApply(ctx, id, bson.M{"$set": set})
}

func (r *NotesRepo) DeleteNote(ctx context.Context, id string) error {
	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *NotesRepo) AddImages(ctx context.Context, id string, refs []string) (*model.Note, error) {
	// $addToSet keeps the no-duplicates invariant on the images array
	return r.findOneAndApply(ctx, id, bson.M{
		"$addToSet": bson.M{"images": bson.M{"$each": refs}},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *NotesRepo) RemoveImage(ctx context.Context, id string, ref string) (*model.Note, error) {
	// pulling an absent reference still matches the note: no-op success
	return r.findOneAndApply(ctx, id, bson.M{
		"$pull": bson.M{"images": ref},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *NotesRepo) CountNotes(ctx context.Context) (int64, error) {
	return r.MongoCollection.CountDocuments(ctx, bson.M{})
}

// findOneAndApply runs the update against the note and returns the
// post-update document, mapping a missing note to ErrNoteNotFound.
func (r *NotesRepo) findOneAndApply(ctx context.Context, id string, update bson.M) (*model.Note, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}
