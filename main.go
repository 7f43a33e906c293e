package main

import (
	"github.com/ahaven/authors-haven-api/cmd"
)

func main() {
	cmd.Execute()
}
