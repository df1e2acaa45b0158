package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeGameSaved        = "GameSaved"
	EventTypeStandingsUpdated = "StandingsUpdated"
)

// Event is a domain event ready to hand to a publisher
type Event struct {
	ID        uuid.UUID
	Type      string
	OwnerID   string
	Payload   []byte
	CreatedAt time.Time
}

// EventPublisher delivers events. Failures are reported, never retried.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// GameSavedPayload is the payload for a GameSaved event
type GameSavedPayload struct {
	GameID     string `json:"game_id"`
	Date       string `json:"date"`
	HomeName   string `json:"home_name"`
	AwayName   string `json:"away_name"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	LeagueName string `json:"league_name"`
}

// StandingsUpdatedPayload is the payload for a StandingsUpdated event
type StandingsUpdatedPayload struct {
	GameID string          `json:"game_id"`
	Teams  []StandingsLine `json:"teams"`
}

// StandingsLine is one team's record after the update
type StandingsLine struct {
	Name   string `json:"name"`
	Wins   int    `json:"w"`
	Losses int    `json:"l"`
	Streak string `json:"streak"`
}

// NewEvent builds an event with a fresh id
func NewEvent(eventType, ownerID string, payload any, at time.Time) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		OwnerID:   ownerID,
		Payload:   data,
		CreatedAt: at.UTC(),
	}, nil
}

// Envelope wraps an event the way it travels on the wire
func Envelope(event Event) ([]byte, error) {
	env := map[string]interface{}{
		"eventId":   event.ID.String(),
		"eventType": event.Type,
		"ownerId":   event.OwnerID,
		"timestamp": event.CreatedAt,
		"payload":   json.RawMessage(event.Payload),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}
