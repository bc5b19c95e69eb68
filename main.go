package main

import "github.com/nyambati/deployctl/cmd/deployctl"

func main() {
	deployctl.Execute()
}
