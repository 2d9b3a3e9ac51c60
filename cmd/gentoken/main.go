package main

import (
	"fmt"
	"time"

	"evalgo.org/emulium/internal/auth"
	"evalgo.org/emulium/models"
)

func main() {
	// Matches the jwt_secret default from config.yaml
	secret := "change-me-in-production"
	username := "lab-automation"
	roles := []models.Role{models.RoleInstructor}
	expiration := 8760 * time.Hour // 1 year

	token, err := auth.GenerateServiceToken(secret, username, roles, expiration)
	if err != nil {
		panic(err)
	}

	fmt.Println(token)
}
