// Command hashpw prints a bcrypt hash for the ADMIN_PASSWORD_HASH
// environment variable.
//
//	hashpw 's3cret'
//
// With no argument the password is read from stdin, so it stays out
// of shell history.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/livingroombaithaks/baithak-booking/internal/utils"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	var plain string
	if flag.NArg() > 0 {
		plain = flag.Arg(0)
	} else {
		fmt.Fprint(os.Stderr, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "hashpw: no password given")
			os.Exit(1)
		}
		plain = strings.TrimRight(line, "\r\n")
	}
	if plain == "" {
		fmt.Fprintln(os.Stderr, "hashpw: no password given")
		os.Exit(1)
	}

	hash, err := utils.HashPassword(plain, *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
