package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"cleanops/internal/config"
	"cleanops/internal/database"
	"cleanops/internal/domain"
)

// Seeds a demo owner with a few properties, jobs, workers and invoices so
// the console has something to show on first run.
func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("config")
	}

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("database")
	}

	if err := db.AutoMigrate(
		&domain.Owner{},
		&domain.Worker{},
		&domain.Property{},
		&domain.JobPost{},
		&domain.Application{},
		&domain.Offer{},
		&domain.Assignment{},
		&domain.Photo{},
		&domain.Invoice{},
		&domain.Payment{},
		&domain.Notification{},
		&domain.Favorite{},
		&domain.Review{},
	); err != nil {
		logger.WithError(err).Fatal("migrate")
	}

	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Fatal("bcrypt")
	}
	owner := domain.Owner{
		ID:           uuid.NewString(),
		Email:        "demo@cleanops.local",
		PasswordHash: string(hash),
		Name:         "Demo Owner",
		CreatedAt:    now,
	}
	if err := db.FirstOrCreate(&owner, domain.Owner{Email: owner.Email}).Error; err != nil {
		logger.WithError(err).Fatal("seed owner")
	}

	workers := []domain.Worker{
		{ID: uuid.NewString(), Name: "Sato Yuki", Rating: 4.8, RatingCount: 24, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Tanaka Mei", Rating: 4.5, RatingCount: 11, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Kimura Ren", CreatedAt: now},
	}
	for i := range workers {
		if err := db.FirstOrCreate(&workers[i], domain.Worker{Name: workers[i].Name}).Error; err != nil {
			logger.WithError(err).Fatal("seed worker")
		}
	}

	properties := []domain.Property{
		{
			ID:         uuid.NewString(),
			OwnerID:    owner.ID,
			Name:       "Shibuya Apartment 101",
			Address:    "1-2-3 Shibuya, Shibuya-ku, Tokyo",
			AccessNote: "Key box by the mailboxes.",
			DoorCode:   "4821",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:        uuid.NewString(),
			OwnerID:   owner.ID,
			Name:      "Asakusa House",
			Address:   "4-5-6 Asakusa, Taito-ku, Tokyo",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for i := range properties {
		if err := db.FirstOrCreate(&properties[i], domain.Property{OwnerID: owner.ID, Name: properties[i].Name}).Error; err != nil {
			logger.WithError(err).Fatal("seed property")
		}
	}

	jobs := []domain.JobPost{
		{
			ID:            uuid.NewString(),
			PropertyID:    properties[0].ID,
			Status:        domain.JobOpen,
			Visibility:    domain.JobPublic,
			JobDate:       now.AddDate(0, 0, 2),
			StartTime:     "10:00",
			ExpectedHours: 2.5,
			PayType:       domain.PayFixed,
			PayAmount:     8000,
			TipAllowed:    true,
			Description:   "Checkout clean after a 4-night stay.",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.NewString(),
			PropertyID:    properties[1].ID,
			Status:        domain.JobDraft,
			Visibility:    domain.JobInviteOnly,
			JobDate:       now.AddDate(0, 0, 9),
			StartTime:     "13:00",
			ExpectedHours: 3,
			PayType:       domain.PayHourly,
			PayAmount:     2200,
			Description:   "Deep clean, kitchen focus.",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
	for i := range jobs {
		if err := db.FirstOrCreate(&jobs[i], domain.JobPost{PropertyID: jobs[i].PropertyID, JobDate: jobs[i].JobDate}).Error; err != nil {
			logger.WithError(err).Fatal("seed job")
		}
	}

	issued := now.AddDate(0, 0, -10)
	invoice := domain.Invoice{
		ID:          uuid.NewString(),
		OwnerID:     owner.ID,
		PeriodFrom:  now.AddDate(0, -1, 0),
		PeriodTo:    now.AddDate(0, 0, -1),
		Subtotal:    16000,
		PlatformFee: 1600,
		Tax:         900,
		Total:       18500,
		Status:      domain.InvoiceIssued,
		DueDate:     now.AddDate(0, 0, 14),
		IssuedAt:    &issued,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.FirstOrCreate(&invoice, domain.Invoice{OwnerID: owner.ID, Total: invoice.Total}).Error; err != nil {
		logger.WithError(err).Fatal("seed invoice")
	}

	logger.WithFields(logrus.Fields{
		"owner":      owner.Email,
		"workers":    len(workers),
		"properties": len(properties),
		"jobs":       len(jobs),
	}).Info("seed complete")
}
