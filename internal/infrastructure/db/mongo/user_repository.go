package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists user accounts in MongoDB. The application-assigned
// id ("usr-" prefix) is used as the document _id.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup; the
// index backs the duplicate-email guarantee under concurrent creates.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID           string       `bson:"_id"`
	Name         string       `bson:"name"`
	Email        string       `bson:"email"`
	PasswordHash string       `bson:"password_hash"`
	PhoneNumber  string       `bson:"phone_number"`
	Address      mongoAddress `bson:"address"`
	CreatedAt    int64        `bson:"created_at"`
	UpdatedAt    int64        `bson:"updated_at"`
}

type mongoAddress struct {
	Line1    string `bson:"line1"`
	Line2    string `bson:"line2,omitempty"`
	Line3    string `bson:"line3,omitempty"`
	Town     string `bson:"town"`
	County   string `bson:"county"`
	Postcode string `bson:"postcode"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		PhoneNumber:  user.PhoneNumber,
		Address: mongoAddress{
			Line1:    user.Address.Line1,
			Line2:    user.Address.Line2,
			Line3:    user.Address.Line3,
			Town:     user.Address.Town,
			County:   user.Address.County,
			Postcode: user.Address.Postcode,
		},
		CreatedAt: user.CreatedAt.Unix(),
		UpdatedAt: user.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return toDomainUser(doc), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(mu), nil
}

func toDomainUser(mu mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		PhoneNumber:  mu.PhoneNumber,
		Address: domain.Address{
			Line1:    mu.Address.Line1,
			Line2:    mu.Address.Line2,
			Line3:    mu.Address.Line3,
			Town:     mu.Address.Town,
			County:   mu.Address.County,
			Postcode: mu.Address.Postcode,
		},
		CreatedAt: unixToTime(mu.CreatedAt),
		UpdatedAt: unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
