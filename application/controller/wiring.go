package controller

import (
	"context"
	"fmt"
	"sync"

	"facepass.io/application/repository"
	event_usecases "facepass.io/application/usecases/event"
	gate_usecases "facepass.io/application/usecases/gate"
	ticket_usecases "facepass.io/application/usecases/ticket"
	"facepass.io/application/utils"
	"facepass.io/infrastructure/biometric"
	"facepass.io/infrastructure/database/repository/cache"
	fileupload "facepass.io/infrastructure/file_upload"
	messagequeue "facepass.io/infrastructure/message_queue"
	"github.com/gin-gonic/gin"
)

var (
	admissionOnce       sync.Once
	admissionController *event_usecases.AdmissionController

	ticketOnce    sync.Once
	ticketService *ticket_usecases.Service

	gateOnce         sync.Once
	gateOrchestrator *gate_usecases.Orchestrator
)

func Admission() *event_usecases.AdmissionController {
	admissionOnce.Do(func() {
		admissionController = event_usecases.NewAdmissionController(repository.MongoEventStore{})
	})
	return admissionController
}

func TicketService() *ticket_usecases.Service {
	ticketOnce.Do(func() {
		ticketService = &ticket_usecases.Service{
			Tickets:      repository.MongoTicketStore{},
			Events:       repository.MongoEventStore{},
			Admission:    Admission(),
			Verifier:     biometric.FaceVerifier,
			Queue:        messagequeue.TaskQueue,
			StoreCapture: storeEnrollmentCapture,
		}
	})
	return ticketService
}

func GateOrchestrator() *gate_usecases.Orchestrator {
	gateOnce.Do(func() {
		gateOrchestrator = &gate_usecases.Orchestrator{
			Tickets:  repository.MongoTicketStore{},
			Verifier: biometric.FaceVerifier,
			Limiter:  gate_usecases.NewRedisAttemptLimiter(cache.Cache),
			Uploads:  fileupload.FileUploader,
		}
	})
	return gateOrchestrator
}

// requestContext unwraps the request-scoped context from the transport layer
// so cancellation propagates into the data layer.
func requestContext(ctx any) context.Context {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		return ginCtx.Request.Context()
	}
	return context.Background()
}

// storeEnrollmentCapture persists the raw registration photo so the remote
// judge strategy has a reference image at the gate.
func storeEnrollmentCapture(ctx context.Context, eventID string, ticketID string, capture string) (string, error) {
	if fileupload.FileUploader == nil {
		return "", nil
	}
	raw, err := utils.DecodeBase64Image(capture)
	if err != nil {
		return "", err
	}
	blobName := fmt.Sprintf("faces/%s/%s.jpg", eventID, ticketID)
	if err := fileupload.FileUploader.UploadBytes(blobName, raw); err != nil {
		return "", err
	}
	return blobName, nil
}
