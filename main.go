package main

import "github.com/llehouerou/tunedeck/internal/cli"

func main() {
	cli.Execute()
}
