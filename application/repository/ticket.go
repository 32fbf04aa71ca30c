package repository

import (
	"sync"

	"facepass.io/entities"
	"facepass.io/infrastructure/database/connection/datastore"
	"facepass.io/infrastructure/database/repository/mongo"
)

var ticketOnce = sync.Once{}

var ticketRepository mongo.MongoRepository[entities.Ticket]

func TicketRepo() *mongo.MongoRepository[entities.Ticket] {
	ticketOnce.Do(func() {
		ticketRepository = mongo.MongoRepository[entities.Ticket]{Model: datastore.TicketModel}
	})
	return &ticketRepository
}
