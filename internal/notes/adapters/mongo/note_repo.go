// Package mongo реализует хранение заметок в MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
)

// NotesCollection - имя коллекции заметок.
const NotesCollection = "notes"

type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Tags      []string           `bson:"tags"`
	IsPinned  bool               `bson:"isPinned"`
	UserID    string             `bson:"userId"`
	CreatedOn time.Time          `bson:"createdOn"`
}

func (d *noteDocument) toEntity() *entities.Note {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &entities.Note{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Tags:      tags,
		IsPinned:  d.IsPinned,
		UserID:    d.UserID,
		CreatedOn: d.CreatedOn,
	}
}

// NoteRepository реализует repositories.NoteRepository поверх коллекции notes.
type NoteRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает репозиторий заметок.
func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{coll: db.Collection(NotesCollection), now: time.Now}
}

// EnsureIndexes создает индекс для выборки заметок владельца.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "isPinned", Value: -1}, {Key: "createdOn", Value: 1}},
		Options: options.Index().SetName("notes_user_pinned"),
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to create notes indexes", zap.Error(err))
		return fmt.Errorf("error creating notes indexes: %w", err)
	}
	return nil
}

// Create вставляет новую заметку.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))

	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}

	doc := noteDocument{
		ID:        primitive.NewObjectID(),
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		IsPinned:  note.IsPinned,
		UserID:    note.UserID,
		CreatedOn: r.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return doc.toEntity(), nil
}

// GetByID получает заметку по ID и ID владельца.
func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByID"))

	filter, ok := ownedFilter(noteID, userID)
	if !ok {
		log.Debug(ctx, "malformed note id", zap.String("noteID", noteID))
		return nil, entities.ErrNoteNotFound
	}

	var doc noteDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return doc.toEntity(), nil
}

// ListByUserID возвращает заметки владельца: закрепленные первыми, затем по дате создания.
func (r *NoteRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByUserID"))

	opts := options.Find().SetSort(bson.D{
		{Key: "isPinned", Value: -1},
		{Key: "createdOn", Value: 1},
		{Key: "_id", Value: 1},
	})

	notes, err := r.find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// Update перезаписывает изменяемые поля заметки владельца.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))

	filter, ok := ownedFilter(note.ID, note.UserID)
	if !ok {
		return nil, entities.ErrNoteNotFound
	}

	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}

	update := bson.M{"$set": bson.M{
		"title":    note.Title,
		"content":  note.Content,
		"tags":     tags,
		"isPinned": note.IsPinned,
	}}

	var doc noteDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return doc.toEntity(), nil
}

// Delete удаляет заметку владельца.
func (r *NoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))

	filter, ok := ownedFilter(noteID, userID)
	if !ok {
		return entities.ErrNoteNotFound
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if res.DeletedCount == 0 {
		return entities.ErrNoteNotFound
	}

	return nil
}

// Search ищет подстроку query в title или content без учета регистра.
func (r *NoteRepository) Search(ctx context.Context, userID, query string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Search"))

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"userId": userID,
		"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdOn", Value: 1}, {Key: "_id", Value: 1}})

	notes, err := r.find(ctx, filter, opts)
	if err != nil {
		log.Error(ctx, "failed to search notes", zap.Error(err))
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entities.Note, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := make([]*entities.Note, 0)
	for cursor.Next(ctx) {
		var doc noteDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		notes = append(notes, doc.toEntity())
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

func ownedFilter(noteID, userID string) (bson.M, bool) {
	objectID, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": objectID, "userId": userID}, true
}
