package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Run this script once to create database indexes
// Usage: go run scripts/create_indexes.go
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "threadcart"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetServerSelectionTimeout(30*time.Second))
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	db := client.Database(dbName)

	categories := db.Collection("categories")
	createIndex(ctx, categories, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("idx_category_slug_unique").SetUnique(true),
	})
	createIndex(ctx, categories, mongo.IndexModel{
		Keys:    bson.D{{Key: "parentId", Value: 1}},
		Options: options.Index().SetName("idx_category_parent"),
	})
	createIndex(ctx, categories, mongo.IndexModel{
		Keys:    bson.D{{Key: "audiences", Value: 1}},
		Options: options.Index().SetName("idx_category_audiences"),
	})
	createIndex(ctx, categories, mongo.IndexModel{
		Keys:    bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetName("idx_category_menu_sort"),
	})

	products := db.Collection("products")
	createIndex(ctx, products, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("idx_product_slug_unique").SetUnique(true),
	})
	createIndex(ctx, products, mongo.IndexModel{
		Keys:    bson.D{{Key: "categoryId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_product_category_date"),
	})
	createIndex(ctx, products, mongo.IndexModel{
		Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "isFeatured", Value: 1}},
		Options: options.Index().SetName("idx_product_featured"),
	})
	createIndex(ctx, products, mongo.IndexModel{
		Keys:    bson.D{{Key: "price", Value: 1}},
		Options: options.Index().SetName("idx_product_price"),
	})

	users := db.Collection("users")
	createIndex(ctx, users, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_user_email_unique").SetUnique(true),
	})

	log.Println("Done")
}

func createIndex(ctx context.Context, coll *mongo.Collection, model mongo.IndexModel) {
	name := *model.Options.Name
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		log.Printf("Failed to create %s: %v", name, err)
		return
	}
	log.Printf("Created index: %s on %s", name, coll.Name())
}
