package main

import "github.com/frahmantamala/finance-dashboard/cmd"

func main() {
	cmd.Execute()
}
