package data

import (
	"context"
	"fmt"
	"log"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/conf"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Data holds every external data handle the services depend on.
type Data struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Minio  *minio.Client
	Bucket string
}

func NewData(cfg *conf.Config) (*Data, func(), error) {
	db, err := gorm.Open(postgres.Open(cfg.Data.DatabaseSource), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("schema migration failed: %w", err)
	}
	log.Println("database schema migrated")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Data.RedisAddr,
		Password: cfg.Data.RedisPassword,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Println("redis connected")

	minioClient, err := minio.New(cfg.Data.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Data.MinioAccessKey, cfg.Data.MinioSecretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("minio init failed: %w", err)
	}

	bucket := cfg.Data.MinioBucket
	exists, err := minioClient.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, nil, fmt.Errorf("minio bucket check failed: %w", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, nil, fmt.Errorf("minio bucket create failed: %w", err)
		}
		log.Printf("minio bucket %q created", bucket)
	}

	d := &Data{
		DB:     db,
		Redis:  rdb,
		Minio:  minioClient,
		Bucket: bucket,
	}

	cleanup := func() {
		log.Println("closing data layer resources...")
		if sqlDB, err := d.DB.DB(); err == nil {
			sqlDB.Close()
		}
		d.Redis.Close()
	}

	return d, cleanup, nil
}

// Migrate creates or updates the schema for every entity. Shared with the test
// helpers so the in-memory database matches production.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Club{},
		&model.ClubMember{},
		&model.Event{},
		&model.OrganizingClub{},
		&model.EventConvenor{},
		&model.Team{},
		&model.TeamMember{},
		&model.EventRegistration{},
		&model.Invitation{},
		&model.Feedback{},
		&model.EventWinner{},
	)
}
