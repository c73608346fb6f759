// Lumen - A launcher query plugin host
//
// Lumen turns a typed launcher query into a list of result items using
// built-in and external query plugins.
//
// Licensed under the MIT License
package main

import (
	"github.com/joho/godotenv"

	"github.com/mobock/lumen/internal/cli"
)

func main() {
	// Optional .env for LUMEN_* configuration; absence is not an error.
	_ = godotenv.Load()

	cli.Execute()
}
