package main

import "github.com/KaramelBytes/agentmetrics-cli/cmd"

func main() {
	cmd.Execute()
}
