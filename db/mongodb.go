package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/settings"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var settingsData = settings.GetSettings()

// Shared context for collection operations
var Ctx = context.Background()

type MongoConn struct {
	client *mongo.Client
	dbName string
}

func (conn *MongoConn) GetCollection(collectionName string) *mongo.Collection {
	return conn.client.Database(conn.dbName).Collection(collectionName)
}

func (conn *MongoConn) GetCollections() ([]string, error) {
	collections, err := conn.client.Database(conn.dbName).ListCollectionNames(Ctx, struct{}{})
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (conn *MongoConn) CreateCollection(
	collectionName string,
	opts *options.CreateCollectionOptions,
) error {
	return conn.client.Database(conn.dbName).CreateCollection(Ctx, collectionName, opts)
}

func NewConnection(host, dbName string) *MongoConn {
	uri := fmt.Sprintf(
		"%s://%s:%s@%s",
		settingsData.MONGO_CONNECTION,
		settingsData.MONGO_ROOT_USERNAME,
		settingsData.MONGO_ROOT_PASSWORD,
		host,
	)
	ctx, cancel := context.WithTimeout(Ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("MongoDB is not responding: %v", err)
	}
	return &MongoConn{
		client: client,
		dbName: dbName,
	}
}
