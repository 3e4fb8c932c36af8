package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/libhub/library-api/config"
	"github.com/libhub/library-api/internal/notifier"
	"github.com/libhub/library-api/pkg/mailer"
)

// sender is satisfied by *mailer.Mailgun; nil means mail sending is
// disabled and moderator events are only logged.
type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// disposition tells the consume loop what to do with a message.
type disposition int

const (
	ackMsg   disposition = iota
	dropMsg              // Nack without requeue
	retryMsg             // Nack with requeue, first delivery only
)

// handleEvent processes one decoded lifecycle event. A send failure on a
// first delivery is retried once via requeue; a redelivered message that
// fails again is dropped so a permanently failing send cannot loop forever.
func handleEvent(ctx context.Context, ev notifier.Event, mg sender, adminEmail string, redelivered bool) disposition {
	switch ev.Type {
	case notifier.TypeModeratorCreated:
		if mg == nil {
			log.Printf("moderator created: username=%s email=%s (mail disabled)", ev.Username, ev.Email)
			return ackMsg
		}
		subject := "New Moderator"
		text := fmt.Sprintf("Moderator %s (%s) has been registered.", ev.Username, ev.Email)
		c, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := mg.Send(c, adminEmail, subject, text, ""); err != nil {
			if redelivered {
				log.Printf("send failed again, dropping: %v", err)
				return dropMsg
			}
			log.Printf("send failed, requeueing once: %v", err)
			return retryMsg
		}
		return ackMsg
	case notifier.TypeCategorySaved:
		log.Printf("category %s: name=%s", ev.Kind, ev.Name)
		return ackMsg
	default:
		log.Printf("unknown event type %q, dropping", ev.Type)
		return dropMsg
	}
}

// event_worker drains the lifecycle event queue. Moderator-created events
// become an email to the admin; category events are only logged.
func main() {
	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	var mg sender
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("Mailgun not configured")
		}
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		log.Println("MAIL_SEND_ENABLED=false; moderator emails will be logged, not sent")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQEventQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev notifier.Event
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			switch handleEvent(ctx, ev, mg, cfg.AdminEmail, msg.Redelivered) {
			case ackMsg:
				_ = msg.Ack(false)
			case retryMsg:
				_ = msg.Nack(false, true)
			default:
				_ = msg.Nack(false, false)
			}
		}
		close(done)
	}()

	log.Printf("event worker listening on queue=%s", cfg.RabbitMQEventQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
