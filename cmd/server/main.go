// cmd/server/main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"leadflow-backend/internal/classifier"
	"leadflow-backend/internal/config"
	"leadflow-backend/internal/controller"
	"leadflow-backend/internal/db"
	"leadflow-backend/internal/mailer"
	"leadflow-backend/internal/queue"
	"leadflow-backend/internal/repository"
	"leadflow-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	conn, err := db.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	log.Println("connected to database")

	leadRepo := &repository.LeadRepository{DB: conn}
	followUpRepo := &repository.FollowUpRepository{DB: conn}

	// Classifier credential resolved once here; absence means the rule-based
	// path handles every inquiry.
	var chatClient classifier.ChatClient
	if cfg.Classifier.Enabled() {
		chatClient = classifier.NewOpenAIChatClient(cfg.Classifier)
	} else {
		log.Println("no classifier credential configured, using rule-based categorization")
	}

	leadService := &service.LeadService{
		LeadRepo:     leadRepo,
		FollowUpRepo: followUpRepo,
		Classifier:   classifier.New(chatClient),
	}

	followUpService := &service.FollowUpService{
		FollowUpRepo: followUpRepo,
		LeadRepo:     leadRepo,
		Sender:       mailer.NewSMTPSender(cfg.SMTP),
	}

	// Dispatch jobs go to RabbitMQ when a broker is reachable (consumed by
	// cmd/worker); otherwise an in-process subscriber handles them.
	var q queue.Queue
	if cfg.AMQP.URL != "" {
		if amqpConn, err := amqp.Dial(cfg.AMQP.URL); err != nil {
			log.Println("broker unreachable, falling back to in-memory dispatch queue:", err)
		} else if aq, err := queue.NewAMQPQueue(amqpConn, cfg.AMQP.Queue); err != nil {
			log.Println("broker setup failed, falling back to in-memory dispatch queue:", err)
		} else {
			q = aq
		}
	}
	if q == nil {
		mem := queue.NewInMemoryQueue()
		queue.StartDispatchSubscriber(mem, followUpService)
		q = mem
	}

	leadController := &controller.LeadController{
		LeadService: leadService,
	}
	followUpController := &controller.FollowUpController{
		FollowUpService: followUpService,
		Queue:           q,
		DispatchTopic:   queue.DispatchTopic,
	}

	r := chi.NewRouter()

	// Lead routes
	r.Post("/leads", leadController.CreateLead)
	r.Get("/leads", leadController.ListLeads)
	r.Get("/leads/{id}", leadController.GetLead)
	r.Patch("/leads/{id}", leadController.UpdateLead)

	// Follow-up routes
	r.Get("/follow-ups", followUpController.ListFollowUps)
	r.Get("/follow-ups/due", followUpController.ListDue)
	r.Post("/follow-ups/dispatch-due", followUpController.DispatchDue)
	r.Post("/follow-ups/{id}/approve", followUpController.Approve)
	r.Post("/follow-ups/{id}/dispatch", followUpController.Dispatch)
	r.Post("/follow-ups/{id}/send-now", followUpController.SendNow)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Println("server running on", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
