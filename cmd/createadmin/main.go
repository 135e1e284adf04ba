package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rentplatform/rentplatform-api/initializers"
	"github.com/rentplatform/rentplatform-api/models"
	"golang.org/x/crypto/bcrypt"
)

// Creates the first admin user, or promotes an existing account.
func main() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter admin email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		log.Fatal("Email is required")
	}

	var existing models.User
	if result := initializers.DB.Where("email = ?", email).First(&existing); result.Error == nil {
		fmt.Printf("User with email %s already exists.\n", email)
		fmt.Print("Do you want to make this user an admin? (y/n): ")
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) == "y" {
			if err := initializers.DB.Model(&existing).Updates(map[string]any{
				"role":        "admin",
				"is_verified": true,
			}).Error; err != nil {
				log.Fatal("Failed to promote user: ", err)
			}
			fmt.Printf("User %s is now an admin!\n", email)
		}
		return
	}

	fmt.Print("Enter admin password: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)
	if password == "" {
		log.Fatal("Password is required")
	}

	fmt.Print("Confirm admin password: ")
	confirm, _ := reader.ReadString('\n')
	if password != strings.TrimSpace(confirm) {
		log.Fatal("Passwords do not match")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	admin := models.User{
		Email:          email,
		HashedPassword: string(hashed),
		Role:           "admin",
		IsVerified:     true,
	}
	if result := initializers.DB.Create(&admin); result.Error != nil {
		log.Fatal("Failed to create admin user: ", result.Error)
	}

	fmt.Println("Admin user created successfully!")
	fmt.Println("Email:", email)
}
