package main

import "github.com/Snorps/better-medical-alerts/cmd/medalert-server/cmd"

func main() {
	cmd.Execute()
}
