// Seeds or resets an admin user. Run once after provisioning:
//
//	go run ./cmd/create-admin -email ops@example.com -password 'secret' -first Ana -last Ops
package main

import (
	"flag"
	"log"
	"time"

	"charter-api/config"
	"charter-api/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "initial password")
	first := flag.String("first", "Admin", "first name")
	last := flag.String("last", "User", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitDB()

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()

	var existing models.User
	err = config.DB.Where("email = ? AND delete_at IS NULL", *email).First(&existing).Error
	if err == nil {
		existing.Password = string(hashed)
		existing.UpdateAt = &now
		if err := config.DB.Save(&existing).Error; err != nil {
			log.Fatal("Failed to reset password:", err)
		}
		log.Printf("Password reset for existing user %s\n", *email)
		return
	}

	user := models.User{
		UserFname: *first,
		UserLname: *last,
		Email:     *email,
		Password:  string(hashed),
		RoleID:    3, // admin
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		log.Fatal("Failed to create user:", err)
	}

	log.Printf("Created admin user %s (id %d)\n", *email, user.UserID)
}
