package main

import "restaurant-cms/cmd"

func main() {
	cmd.Execute()
}
