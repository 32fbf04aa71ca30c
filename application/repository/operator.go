package repository

import (
	"sync"

	"facepass.io/entities"
	"facepass.io/infrastructure/database/connection/datastore"
	"facepass.io/infrastructure/database/repository/mongo"
)

var operatorOnce = sync.Once{}

var operatorRepository mongo.MongoRepository[entities.Operator]

func OperatorRepo() *mongo.MongoRepository[entities.Operator] {
	operatorOnce.Do(func() {
		operatorRepository = mongo.MongoRepository[entities.Operator]{Model: datastore.OperatorModel}
	})
	return &operatorRepository
}
