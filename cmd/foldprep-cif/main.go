package main

import (
	"foldprep/internal/appshell"
	"foldprep/internal/cifapp"
)

func main() {
	appshell.Main(cifapp.RunContext)
}
