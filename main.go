package main

import "github.com/spendwise/expense-tracker/cmd"

func main() {
	cmd.Execute()
}
