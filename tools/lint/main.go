// Command lint runs the analyzers toolutil is checked with.
//
//	go run ./tools/lint ./...
package main

import "golang.org/x/tools/go/analysis/multichecker"

func main() {
	multichecker.Main(Analyzers...)
}
