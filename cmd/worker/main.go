// cmd/worker/main.go
package main

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"leadflow-backend/internal/config"
	"leadflow-backend/internal/db"
	appErrors "leadflow-backend/internal/errors"
	"leadflow-backend/internal/mailer"
	"leadflow-backend/internal/queue"
	"leadflow-backend/internal/repository"
	"leadflow-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	conn, err := db.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}

	followUpService := &service.FollowUpService{
		FollowUpRepo: &repository.FollowUpRepository{DB: conn},
		LeadRepo:     &repository.LeadRepository{DB: conn},
		Sender:       mailer.NewSMTPSender(cfg.SMTP),
	}

	amqpConn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ:", err)
	}
	defer amqpConn.Close()

	ch, err := amqpConn.Channel()
	if err != nil {
		log.Fatal("failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.AMQP.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatal("failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("failed to register consumer:", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job queue.DispatchJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Println("invalid job:", err)
				d.Ack(false)
				continue
			}

			processDispatch(job.FollowUpID, followUpService)

			// A failed delivery lands the record in FAILED, which is
			// terminal, so the job is acked either way. No requeue.
			d.Ack(false)
		}
	}()

	log.Println("worker running, waiting for dispatch jobs...")
	<-forever
}

func processDispatch(followUpID string, svc *service.FollowUpService) {
	followUp, err := svc.Dispatch(followUpID)
	if err != nil {
		var invalid *appErrors.ErrInvalidTransition
		var notFound *appErrors.ErrFollowUpNotFound
		switch {
		case errors.Is(err, appErrors.ErrNotApproved):
			log.Println("skipping unapproved follow-up:", followUpID)
		case errors.As(err, &invalid):
			log.Println("skipping stale dispatch job:", err)
		case errors.As(err, &notFound):
			log.Println("follow-up not found, dropping job:", followUpID)
		default:
			log.Println("dispatch failed:", err)
		}
		return
	}

	log.Println("follow-up sent:", followUp.ID)
}
