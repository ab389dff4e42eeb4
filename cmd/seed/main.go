// Seeds the products collection so a fresh environment has something to add
// to a cart. Safe to re-run: products are upserted by id.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanchitttt/qkart-backend/internal/catalog"
	"github.com/sanchitttt/qkart-backend/internal/config"
	"github.com/sanchitttt/qkart-backend/internal/db"
	"github.com/sanchitttt/qkart-backend/internal/domain"
	"github.com/sanchitttt/qkart-backend/pkg/logger"
)

var products = []domain.Product{
	{
		ID:       "6010008e6c3477697e8eaba3",
		Name:     "UNIFACTOR Mens Sports Shoes",
		Category: "Sports",
		Rating:   5,
		Cost:     50,
		Image:    "http://crio-directus-assets.s3.ap-south-1.amazonaws.com/66ee9598-d425-4b74-a4d7-dcc6c5875e5b.png",
	},
	{
		ID:       "6010008e6c3477697e8eaba4",
		Name:     "YONEX Smash Badminton Racquet",
		Category: "Sports",
		Rating:   5,
		Cost:     100,
		Image:    "http://crio-directus-assets.s3.ap-south-1.amazonaws.com/64b930f7-3c82-4a29-a433-60e81b1f4b30.png",
	},
	{
		ID:       "6010008e6c3477697e8eaba5",
		Name:     "Tan Leatherette Weekender Duffle",
		Category: "Fashion",
		Rating:   4,
		Cost:     150,
		Image:    "http://crio-directus-assets.s3.ap-south-1.amazonaws.com/ff071a1c-1099-48f9-9b03-f858ccc53832.png",
	},
	{
		ID:       "6010008e6c3477697e8eaba6",
		Name:     "The Minimalist Slim Leather Watch",
		Category: "Electronics",
		Rating:   5,
		Cost:     60,
		Image:    "http://crio-directus-assets.s3.ap-south-1.amazonaws.com/5b478a4a-bf81-467c-964c-1881887799b7.png",
	},
	{
		ID:       "6010008e6c3477697e8eaba7",
		Name:     "Stylecon 9 Seater RHS Sofa Set",
		Category: "Home & Kitchen",
		Rating:   4,
		Cost:     200,
		Image:    "http://crio-directus-assets.s3.ap-south-1.amazonaws.com/e6b1b6c0-6b3d-4b6e-8e2a-9b1b1b1b1b1b.png",
	},
}

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Options{
		Service: "qkart-seed",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoDB, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(ctx)

	repo := catalog.NewMongoRepository(mongoDB)
	for _, p := range products {
		if err := repo.Upsert(ctx, p); err != nil {
			log.Fatal("failed to seed product", zap.String("id", p.ID), zap.Error(err))
		}
		log.Info("seeded product", zap.String("id", p.ID), zap.String("name", p.Name))
	}

	log.Info("seeding completed", zap.Int("products", len(products)))
}
