package main

import "github.com/posidlab/pdfcompare/cmd/pdfcompare/commands"

func main() {
	commands.Execute()
}
