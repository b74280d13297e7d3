package main

import "github.com/brandingpioneers/hr-management/cmd"

func main() {
	cmd.Execute()
}
