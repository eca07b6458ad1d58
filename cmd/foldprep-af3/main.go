package main

import (
	"foldprep/internal/appshell"
	"foldprep/internal/af3app"
)

func main() {
	appshell.Main(af3app.RunContext)
}
