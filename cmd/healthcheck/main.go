package main

import (
	"net/http"
	"os"
	"time"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
)

func main() {
	url := os.Getenv(constants.EnvHealthURL)
	if url == "" {
		url = constants.DefaultHealthURL
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
