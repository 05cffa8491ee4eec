package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dorm-booking/internal/data/entity"

	amqp "github.com/rabbitmq/amqp091-go"
)

const ReservationAdmittedRoutingKey = "reservation.admitted"

// ReservationAdmittedEvent is the message body published after a successful admission
type ReservationAdmittedEvent struct {
	ReservationID  string    `json:"reservation_id"`
	RoomID         string    `json:"room_id"`
	UserID         string    `json:"user_id"`
	CheckInDate    string    `json:"check_in_date"`
	CheckOutDate   string    `json:"check_out_date"`
	NumberOfPeople int       `json:"number_of_people"`
	AdmittedOpen   bool      `json:"admitted_open"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewReservationAdmittedEvent(r *entity.Reservation) ReservationAdmittedEvent {
	return ReservationAdmittedEvent{
		ReservationID:  r.ID.String(),
		RoomID:         r.RoomID.String(),
		UserID:         r.UserID.String(),
		CheckInDate:    r.CheckInDate.Format(entity.DateLayout),
		CheckOutDate:   r.CheckOutDate.Format(entity.DateLayout),
		NumberOfPeople: r.NumberOfPeople,
		AdmittedOpen:   r.AdmittedOpen,
		OccurredAt:     r.CreatedAt,
	}
}

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// NewPublisher dials the broker and declares a durable topic exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) PublishReservationAdmitted(ctx context.Context, reservation *entity.Reservation) error {
	body, err := json.Marshal(NewReservationAdmittedEvent(reservation))
	if err != nil {
		return fmt.Errorf("marshal reservation event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,
		ReservationAdmittedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    reservation.ID.String(),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", ReservationAdmittedRoutingKey, p.exchange, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
