package datastore

import (
	"context"
	"os"
	"time"

	"facepass.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client        *mongo.Client
	TicketModel   *mongo.Collection
	EventModel    *mongo.Collection
	OperatorModel *mongo.Collection
)

func ConnectToDatabase() {
	cancel := connectMongo()
	if cancel != nil {
		defer (*cancel)()
	}
}

func connectMongo() *context.CancelFunc {
	url := os.Getenv("DB_URL")

	if url == "" {
		logger.Error("mongo url missing")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)

	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return &cancel
	}

	Client = client
	db := client.Database(os.Getenv("DB_NAME"))
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
	return &cancel
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	TicketModel = db.Collection("Tickets")
	TicketModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "eventID", Value: 1}, {Key: "holder.email", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index(),
	}})

	EventModel = db.Collection("Events")
	EventModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "isActive", Value: 1}},
		Options: options.Index(),
	}})

	OperatorModel = db.Collection("Operators")
	OperatorModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	logger.Info("mongodb indexes set up successfully")
}

func CleanUp() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		logger.Error("error disconnecting from mongodb", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}
