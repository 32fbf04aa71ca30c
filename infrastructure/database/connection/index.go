package connection

import (
	"facepass.io/infrastructure/database/connection/cache"
	"facepass.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
