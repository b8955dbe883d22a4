package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"go-floor-inventory/internal/config"
	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/repository"
	"go-floor-inventory/pkg/database"
	"go-floor-inventory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Creates a floor user, or resets the password and name of an existing one.
//
//	go run ./cmd/create-user -email kumazawa@example.com -password secret123 -name Kumazawa -role STAFF
func main() {
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "password (min 6 characters)")
	name := flag.String("name", "", "display name written to requested_by")
	role := flag.String("role", model.RoleStaff, "SUPERVISOR or STAFF")
	flag.Parse()

	if len(*password) < 6 {
		log.Fatal("❌ -password must be at least 6 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.ConnectDB(cfg.Database, cfg.App.Location().String())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("❌ Failed to migrate users: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepo(db)

	user, err := userRepo.FindByEmail(ctx, *email)
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		log.Fatalf("❌ Failed to look up %s: %v", *email, err)
	}
	if isNew {
		user = &model.User{Email: *email, IsActive: true}
		user.CreatedBy = "create-user"
	}
	user.DisplayName = *name
	user.Role = *role
	user.UpdatedBy = "create-user"

	if msg := validator.FirstError(user); msg != "" {
		log.Fatalf("❌ Invalid user: %s", msg)
	}
	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	// Existing sessions end with the password change
	user.TokenVersion = uuid.New().String()

	if isNew {
		err = userRepo.Create(ctx, user)
	} else {
		err = userRepo.Update(ctx, user)
	}
	if err != nil {
		log.Fatalf("❌ Failed to save user: %v", err)
	}

	if isNew {
		log.Printf("✅ Created %s (%s, %s)", user.Email, user.DisplayName, user.Role)
	} else {
		log.Printf("✅ Updated %s (%s, %s)", user.Email, user.DisplayName, user.Role)
	}
}
