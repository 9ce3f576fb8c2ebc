package main

import (
	"os"

	"myzai/cmd"
)

// @title						myzAI Studio API
// @version					1.0
// @description				AI lyrics, album art and music chat studio.
// @BasePath					/
// @securityDefinitions.apikey	SessionToken
// @in							header
// @name						Authorization
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
