package main

import "valmiki-backend/cmd/valmiki-cli/cmd"

func main() {
	cmd.Execute()
}
