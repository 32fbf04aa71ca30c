package messagequeue

import (
	"time"

	"facepass.io/application/constants"
	"facepass.io/infrastructure/message_queue/asynq"
	queue_tasks "facepass.io/infrastructure/message_queue/tasks"
	mq_types "facepass.io/infrastructure/message_queue/types"
)

var TaskQueue mq_types.TaskQueueBroker = &asynq.AsynqBroker{}

func StartQueue() {
	go scheduleExpirySweep()
	TaskQueue.Start()
}

// scheduleExpirySweep enqueues the pending-payment sweep on a fixed cadence.
// The first run happens one hold window after boot, by which point the worker
// client is connected.
func scheduleExpirySweep() {
	interval := time.Duration(constants.PENDING_PAYMENT_TTL_MINUTES) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		TaskQueue.Enqueue(mq_types.QueueTask{
			Name:     queue_tasks.HandleTicketExpirySweepTaskName,
			Priority: mq_types.Low,
		})
	}
}
