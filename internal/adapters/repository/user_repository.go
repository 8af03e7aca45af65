package repository

import (
	"context"

	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository interface {
	Insert(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

type MongoUserRepository struct {
	DB *mongo.Database
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{DB: db}
}

func (r *MongoUserRepository) Insert(ctx context.Context, user models.User) (models.User, error) {
	res, err := r.DB.Collection("users").InsertOne(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.DB.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
