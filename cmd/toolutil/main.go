// Toolutil locates build tools and expands construction variables.
package main

import "github.com/albertocavalcante/toolutil/cmd/toolutil/internal/cli"

func main() {
	cli.Execute()
}
