package main

import "github.com/inovacc/pplaces/cmd"

func main() {
	cmd.Execute()
}
