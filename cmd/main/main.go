package main

import "github.com/Another0Noob/stagelog/cmd"

func main() {
	cmd.Execute()
}
