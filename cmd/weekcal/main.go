package main

import "weekcal/cmd/weekcal/cmd"

func main() {
	cmd.Execute()
}
