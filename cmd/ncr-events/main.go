// Command ncr-events serves and browses Delhi-NCR intellectual events.
package main

import "github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/cli"

func main() {
	cli.Execute()
}
