// Package main provides the entry point for the axsetup CLI.
package main

import "os"

func main() {
	os.Exit(Execute())
}
