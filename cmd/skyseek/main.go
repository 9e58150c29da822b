package main

import (
	"log"

	"github.com/skyseek/skyseek/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("skyseek failed to start: %v", err)
	}
}
