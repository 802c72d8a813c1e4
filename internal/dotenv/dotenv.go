// Package dotenv loads .env files into the process environment.
package dotenv

import (
	"os"

	"github.com/joho/godotenv"
)

// Load reads the given .env files and sets their keys in the environment.
// Variables that are already set keep their value.
func Load(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// Overload is like Load but replaces variables that are already set.
func Overload(filenames ...string) error {
	return godotenv.Overload(filenames...)
}

// LoadDefault loads .env file from the current directory, or the file named by
// ENV_FILE when set.
func LoadDefault() error {
	if path := os.Getenv("ENV_FILE"); path != "" {
		return Load(path)
	}
	return Load(".env")
}
