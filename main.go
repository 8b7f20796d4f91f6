package main

import "github.com/merakitools/meraudit/cmd"

func main() {
	cmd.Execute()
}
