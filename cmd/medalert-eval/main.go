package main

import "github.com/Snorps/better-medical-alerts/cmd/medalert-eval/cmd"

func main() {
	cmd.Execute()
}
