package main

import "github.com/tahmidriaz/scrubdash/internal/cmd"

func main() {
	cmd.Execute()
}
