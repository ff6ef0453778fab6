// Package mongo реализует хранение пользователей в MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/domain/services"
	"notekeeper/internal/auth/ports/repositories"
	"notekeeper/pkg/logger"
)

// UsersCollection - имя коллекции пользователей.
const UsersCollection = "users"

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	FullName  string             `bson:"fullName"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedOn time.Time          `bson:"createdOn"`
}

func (d *userDocument) toEntity() *entities.User {
	return &entities.User{
		ID:           d.ID.Hex(),
		FullName:     d.FullName,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedOn:    d.CreatedOn,
	}
}

// UserRepository реализует repositories.UserRepository поверх коллекции users.
type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(UsersCollection), now: time.Now}
}

// EnsureIndexes создает уникальный индекс по email.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to create users indexes", zap.Error(err))
		return fmt.Errorf("error creating users indexes: %w", err)
	}
	return nil
}

// Create вставляет нового пользователя. Нарушение уникального индекса дает ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	doc := userDocument{
		ID:        primitive.NewObjectID(),
		FullName:  user.FullName,
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedOn: r.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Debug(ctx, "email already registered", zap.String("email", user.Email))
			return nil, services.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return doc.toEntity(), nil
}

// FindByID находит пользователя по ObjectID в шестнадцатеричной записи.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Debug(ctx, "malformed user id", zap.String("id", id))
		return nil, entities.ErrUserNotFound
	}

	return r.findOne(ctx, log, bson.M{"_id": objectID})
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))
	return r.findOne(ctx, log, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, log *logger.Logger, filter bson.M) (*entities.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug(ctx, "user not found")
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user", zap.Error(err))
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return doc.toEntity(), nil
}
