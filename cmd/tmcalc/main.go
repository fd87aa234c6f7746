// cmd/tmcalc/main.go
package main

import (
	"tmcalc/internal/appshell"
	"tmcalc/internal/tmapp"
)

func main() { appshell.Main(tmapp.RunContext) }
