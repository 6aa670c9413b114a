package main

import (
	"context"
	"log"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/conf"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/data"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/handler"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/mailer"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/router"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/service"
)

func main() {
	cfg := conf.LoadConfig()

	d, cleanup, err := data.NewData(cfg)
	if err != nil {
		log.Fatalf("data layer init failed: %v", err)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notification side: queue-backed, best-effort.
	mail := mailer.NewQueueMailer(d.Redis)
	mailWorker := mailer.NewWorker(d.Redis, cfg.Mail)
	mailWorker.Start(ctx, 2)

	codes := service.NewRedisCodeStore(d.Redis)

	authService := service.NewAuthService(d.DB, codes, mail, cfg.Auth.JWTSecret, cfg.Mail.Domain)
	clubService := service.NewClubService(d.DB)
	eventService := service.NewEventService(d.DB, d.Redis, d.Minio, d.Bucket)
	registrationService := service.NewRegistrationService(d.DB)
	invitationService := service.NewInvitationService(d.DB, mail)
	attendanceService := service.NewAttendanceService(d.DB)
	feedbackService := service.NewFeedbackService(d.DB, d.Redis)
	historyService := service.NewHistoryService(d.DB, d.Redis)

	h := router.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		User:  handler.NewUserHandler(registrationService, invitationService, feedbackService),
		Event: handler.NewEventHandler(eventService),
		Admin: handler.NewAdminHandler(clubService, eventService, attendanceService, historyService),
	}

	r := router.SetupRouter(h, []byte(cfg.Auth.JWTSecret))

	log.Printf("event management backend listening on :%s", cfg.App.Port)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
