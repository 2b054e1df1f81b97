// Command hash-generator prints bcrypt hashes for the passwords given as
// arguments, for seeding usuario rows by hand.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password...")
		os.Exit(2)
	}

	if failed := hashAll(os.Stdout, auth.NewBcryptHasher(*cost), flag.Args()); failed > 0 {
		os.Exit(1)
	}
}

// hashAll writes one hash per password and returns how many failed.
func hashAll(w io.Writer, hasher auth.PasswordHasher, passwords []string) int {
	failed := 0
	for _, password := range passwords {
		if err := domain.ValidatePassword(password); err != nil {
			fmt.Fprintf(w, "Password: %s\nError: %v\n\n", password, err)
			failed++
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(w, "Password: %s\nError: %v\n\n", password, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "Password: %s\nHash: %s\n\n", password, hash)
	}
	return failed
}
