// Package notifications publishes application events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"lifeline/internal/models"

	"github.com/redis/go-redis/v9"
)

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// UserChannel returns the Redis channel for a user's notifications.
func UserChannel(userID uint) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast sends a notification payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, "notifications:broadcast", payload).Err()
}

// PublishContactRequestCreated notifies a donor that someone asked to reach them.
func (n *Notifier) PublishContactRequestCreated(ctx context.Context, donorID uint, request *models.ContactRequest, requesterName string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"type":           "contact_request_created",
		"request_id":     request.ID,
		"requester_name": requesterName,
		"hospital":       request.Hospital,
		"created_at":     request.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.PublishUser(ctx, donorID, string(payload))
}

// PublishContactRequestResolved notifies the requester of the donor's decision.
func (n *Notifier) PublishContactRequestResolved(ctx context.Context, request *models.ContactRequest) error {
	payload, err := json.Marshal(map[string]interface{}{
		"type":       "contact_request_resolved",
		"request_id": request.ID,
		"status":     request.Status,
		"donor_id":   request.DonorID,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.PublishUser(ctx, request.RequesterID, string(payload))
}
