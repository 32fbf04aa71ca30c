package repository

import (
	"sync"

	"facepass.io/entities"
	"facepass.io/infrastructure/database/connection/datastore"
	"facepass.io/infrastructure/database/repository/mongo"
)

var eventOnce = sync.Once{}

var eventRepository mongo.MongoRepository[entities.Event]

func EventRepo() *mongo.MongoRepository[entities.Event] {
	eventOnce.Do(func() {
		eventRepository = mongo.MongoRepository[entities.Event]{Model: datastore.EventModel}
	})
	return &eventRepository
}
