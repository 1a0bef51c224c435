package strata_test

import (
	"fmt"
	"os"

	"github.com/jpl-au/strata"
)

func Example() {
	dir, _ := os.MkdirTemp("", "strata")
	defer os.RemoveAll(dir)

	st, err := strata.Open(dir, strata.Config{})
	if err != nil {
		panic(err)
	}
	defer st.Close()

	st.Set("language", "go")
	st.Set("language", "Go")

	value, ok, _ := st.Get("language")
	fmt.Println(value, ok)

	st.Remove("language")
	_, ok, _ = st.Get("language")
	fmt.Println(ok)

	// Output:
	// Go true
	// false
}
