// Command strata is the command-line front end for the store.
//
// Usage:
//
//	strata set KEY VALUE
//	strata get KEY
//	strata rm KEY
//
// All commands operate on a store in the current working directory.
// get of an absent key prints "Key not found" and exits 0; rm of an
// absent key prints "Key not found" and exits 1.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/strata"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		return usage()
	}
	dir, err := os.Getwd()
	if err != nil {
		return fail(err)
	}

	switch args[0] {
	case "set":
		if len(args) != 3 {
			return usage()
		}
		st, err := strata.Open(dir, strata.Config{})
		if err != nil {
			return fail(err)
		}
		defer st.Close()
		if err := st.Set(args[1], args[2]); err != nil {
			return fail(err)
		}
	case "get":
		if len(args) != 2 {
			return usage()
		}
		st, err := strata.Open(dir, strata.Config{})
		if err != nil {
			return fail(err)
		}
		defer st.Close()
		value, ok, err := st.Get(args[1])
		if err != nil {
			return fail(err)
		}
		if !ok {
			fmt.Println("Key not found")
			return 0
		}
		fmt.Println(value)
	case "rm":
		if len(args) != 2 {
			return usage()
		}
		st, err := strata.Open(dir, strata.Config{})
		if err != nil {
			return fail(err)
		}
		defer st.Close()
		if err := st.Remove(args[1]); err != nil {
			if errors.Is(err, strata.ErrKeyNotFound) {
				fmt.Println("Key not found")
				return 1
			}
			return fail(err)
		}
	default:
		return usage()
	}
	return 0
}

func usage() int {
	fmt.Fprintln(os.Stderr, "usage: strata set KEY VALUE | get KEY | rm KEY")
	return 2
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}
