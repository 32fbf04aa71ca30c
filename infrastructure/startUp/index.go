package startup

import (
	"facepass.io/infrastructure/biometric"
	"facepass.io/infrastructure/database"
	"facepass.io/infrastructure/database/connection/datastore"
	fileupload "facepass.io/infrastructure/file_upload"
	"facepass.io/infrastructure/logger"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	fileupload.InitialiseFileUploader()
	biometric.InitialiseBiometricService()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
