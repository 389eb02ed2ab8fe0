package main

import "github.com/JackalLabs/harvester/cmd"

func main() {
	cmd.Execute(cmd.RootCmd())
}
