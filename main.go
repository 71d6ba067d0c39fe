package main

import "pawnder-backend/cmd"

func main() {
	cmd.Run()
}
