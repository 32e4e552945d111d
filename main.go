package main

import (
	"os"

	"github.com/fleamarket/fleamarket/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
