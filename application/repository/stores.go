package repository

import (
	"context"
	"time"

	"facepass.io/entities"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTicketStore adapts the generic ticket repository to the domain
// operations the lifecycle and gate usecases need. All status mutations go
// through conditional single-operation updates.
type MongoTicketStore struct{}

func (MongoTicketStore) Create(ctx context.Context, ticket entities.Ticket) (*entities.Ticket, error) {
	return TicketRepo().CreateOne(ctx, ticket)
}

func (MongoTicketStore) FindByID(ctx context.Context, id string) (*entities.Ticket, error) {
	return TicketRepo().FindByID(ctx, id)
}

// FindClaim resolves the unique non-used ticket for a claimed identity within
// one event. Most recent purchase wins if the claim is ambiguous.
func (MongoTicketStore) FindClaim(ctx context.Context, eventID string, email string) (*entities.Ticket, error) {
	sort := bson.D{{Key: "purchaseDate", Value: -1}}
	return TicketRepo().FindOneByFilter(ctx, map[string]interface{}{
		"eventID":      eventID,
		"holder.email": email,
		"status":       bson.M{"$ne": entities.TicketUsed},
	}, options.FindOne().SetSort(sort))
}

func (MongoTicketStore) UsedTicketExists(ctx context.Context, eventID string, email string) (bool, error) {
	count, err := TicketRepo().CountDocs(ctx, map[string]interface{}{
		"eventID":      eventID,
		"holder.email": email,
		"status":       entities.TicketUsed,
	})
	return count > 0, err
}

// TransitionStatus performs the compare-and-set move between two statuses.
// Returns false when the ticket was not in the expected source status, which
// is how a racing second admit observes it lost.
func (MongoTicketStore) TransitionStatus(ctx context.Context, id string, from entities.TicketStatus, to entities.TicketStatus) (bool, error) {
	return TicketRepo().ConditionalUpdate(ctx, map[string]interface{}{
		"_id":    id,
		"status": from,
	}, map[string]interface{}{
		"$set": bson.M{"status": to, "updatedAt": time.Now()},
	})
}

// BindDescriptor sets the descriptor and activates the ticket in one
// conditional write. The filter requires the awaiting-enrollment status and an
// absent descriptor, making enrollment exactly-once.
func (MongoTicketStore) BindDescriptor(ctx context.Context, id string, descriptor entities.FaceDescriptor, imageBlob string) (bool, error) {
	set := bson.M{"status": entities.TicketActive, "updatedAt": time.Now()}
	if len(descriptor) > 0 {
		set["faceDescriptor"] = descriptor
	}
	if imageBlob != "" {
		set["faceImageBlob"] = imageBlob
	}
	return TicketRepo().ConditionalUpdate(ctx, map[string]interface{}{
		"_id":            id,
		"status":         entities.TicketPaidPendingFace,
		"faceDescriptor": bson.M{"$exists": false},
	}, map[string]interface{}{
		"$set": set,
	})
}

func (MongoTicketStore) CountByStatus(ctx context.Context, eventID string, status entities.TicketStatus) (int64, error) {
	return TicketRepo().CountDocs(ctx, map[string]interface{}{
		"eventID": eventID,
		"status":  status,
	})
}

// MongoEventStore adapts the event repository for the admission controller
// and the snapshot feed.
type MongoEventStore struct{}

func (MongoEventStore) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	return EventRepo().FindByID(ctx, id)
}

func (MongoEventStore) ActiveEvents(ctx context.Context) (*[]entities.Event, error) {
	sort := bson.D{{Key: "date", Value: 1}}
	return EventRepo().FindMany(ctx, map[string]interface{}{
		"isActive": true,
	}, options.Find().SetSort(sort))
}

// IncrementAttendees bumps the attendee counter atomically. With enforceCap
// the filter also requires spare capacity, so the increment and the capacity
// check are one conditional operation; false means the event was missing,
// inactive, or full.
func (MongoEventStore) IncrementAttendees(ctx context.Context, id string, enforceCap bool) (bool, error) {
	filter := map[string]interface{}{
		"_id":      id,
		"isActive": true,
	}
	if enforceCap {
		filter["$expr"] = bson.M{"$lt": bson.A{"$currentAttendees", "$maxCapacity"}}
	}
	return EventRepo().ConditionalUpdate(ctx, filter, map[string]interface{}{
		"$inc": bson.M{"currentAttendees": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
}

// DecrementAttendees compensates a seat reserved by IncrementAttendees when
// the enrollment it was reserved for did not commit. Floors at zero.
func (MongoEventStore) DecrementAttendees(ctx context.Context, id string) error {
	_, err := EventRepo().ConditionalUpdate(ctx, map[string]interface{}{
		"_id":              id,
		"currentAttendees": bson.M{"$gt": 0},
	}, map[string]interface{}{
		"$inc": bson.M{"currentAttendees": -1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	return err
}

// WatchActiveEvents delivers the full active-event list on every change.
func (store MongoEventStore) WatchActiveEvents(ctx context.Context) (<-chan []entities.Event, error) {
	return EventRepo().WatchCollection(ctx, func(c context.Context) (*[]entities.Event, error) {
		return store.ActiveEvents(c)
	})
}
