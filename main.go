package main

import "github.com/ridoystarlord/debtreport/cmd"

func main() {
	cmd.Execute()
}
