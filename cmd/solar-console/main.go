// Command solar-console is a full-screen launcher grid for a living-room
// media console.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
