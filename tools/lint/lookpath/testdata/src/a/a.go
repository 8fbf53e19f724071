package a

import (
	"os"
	"os/exec"
)

const pathVar = "PATH"

func bad() {
	exec.LookPath("gcc")           // want "exec.LookPath ignores the execution environment"
	_ = os.Getenv("PATH")          // want "reading the host PATH directly"
	_, _ = os.LookupEnv("PATHEXT") // want "reading the host PATH directly"
	_ = os.Getenv(pathVar)         // want "reading the host PATH directly"
}

func good() {
	_ = os.Getenv("HOME")
	_ = exec.Command("gcc", "--version")
}
