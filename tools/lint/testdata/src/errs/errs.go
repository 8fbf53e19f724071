package errs

import "os"

func bad() {
	os.Remove("toolutil.toml") // want "unchecked error"
}

func good() {
	_ = os.Remove("toolutil.toml")
}

func alsoGood() error {
	f, err := os.Open("toolutil.toml")
	if err != nil {
		return err
	}
	return f.Close()
}
