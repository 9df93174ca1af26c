package main

import "github.com/arjav-14/cost-console/cmd"

func main() {
	cmd.Execute()
}
