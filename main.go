package main

import "github.com/Alijeyrad/stomatology_backend/cmd"

func main() {
	cmd.Execute()
}
