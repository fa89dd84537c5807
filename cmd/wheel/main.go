package main

import (
	"log"

	"wheel_backend/internal/app"
)

func main() {
	a := app.NewApp()

	err := a.Run()
	if err != nil {
		log.Fatal(err)
	}
}
