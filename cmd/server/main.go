package main

import "github.com/jaberDevHub/help-hive-server-side/cmd/server/cmd"

func main() {
	cmd.Execute()
}
