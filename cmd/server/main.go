package main

import (
	"log"

	"github.com/joho/godotenv"

	"ferias/internal/app/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	server.Run()
}
