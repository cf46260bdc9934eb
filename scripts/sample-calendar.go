package main

import (
	"fmt"
	"os"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/calendar"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/client"
)

func main() {
	icsContent := calendar.GenerateBulkICS(client.Placeholder(), "NCR Sample Events", time.Now())

	// Write to file (owner read/write only)
	filename := "sample-ncr-events.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
