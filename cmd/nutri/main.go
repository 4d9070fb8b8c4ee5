package main

import "github.com/franckalain/nutriscan/internal/cli"

func main() {
	cli.Execute()
}
