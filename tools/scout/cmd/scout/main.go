// Command scout fetches an FBref player page, writes an AI scouting report and
// answers follow-up questions about the player.
//
// Usage:
//
//	scout search "Kylian Mbappe"
//	scout stats https://fbref.com/en/players/42fd9c7f/Kylian-Mbappe
//	scout report --name "Raphinha" --export
//	scout chat --name "Raphinha"
package main

import (
	"github.com/joho/godotenv"

	"github.com/tyler180/fbref-scout/tools/scout/internal/app/cli"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	cli.Execute()
}
