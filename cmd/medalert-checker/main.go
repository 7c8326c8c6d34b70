package main

import "github.com/Snorps/better-medical-alerts/cmd/medalert-checker/cmd"

func main() {
	cmd.Execute()
}
