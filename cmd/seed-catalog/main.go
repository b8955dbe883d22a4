package main

import (
	"context"
	"log"

	"go-floor-inventory/internal/config"
	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/repository"
	"go-floor-inventory/pkg/database"
)

var sampleProducts = []model.Product{
	{
		ProductNumber:    "12345-67890-71",
		LocationNumber:   "123456",
		BoxType:          "A4",
		LocationCapacity: 50,
		Description:      "sample part",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.ConnectDB(cfg.Database, cfg.App.Location().String())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		log.Fatalf("❌ Failed to migrate products: %v", err)
	}

	productRepo := repository.NewProductRepo(db)
	for i := range sampleProducts {
		p := sampleProducts[i]
		if err := productRepo.Upsert(context.Background(), &p); err != nil {
			log.Fatalf("❌ Failed to upsert %s: %v", p.ProductNumber, err)
		}
		log.Printf("✅ %s at %s (%s, capacity %d)", p.ProductNumber, p.LocationNumber, p.BoxType, p.LocationCapacity)
	}
}
