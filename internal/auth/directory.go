package auth

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Domenick1991/skybook/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Operator is an account allowed to call the booking API.
type Operator struct {
	Username     string
	Email        string
	PasswordHash []byte
	Privileged   bool
}

// Credentials configure one operator. Exactly one of Password and
// PasswordHash is expected; a plaintext password is hashed on load.
type Credentials struct {
	Username     string
	Email        string
	Password     string
	PasswordHash string
	Privileged   bool
}

// DefaultCredentials are used when no operators are configured.
func DefaultCredentials() []Credentials {
	return []Credentials{
		{Username: "admin", Password: "admin123", Privileged: true},
		{Username: "user", Password: "user123"},
	}
}

// Directory resolves usernames and passwords to callers. It is read-only
// after construction.
type Directory struct {
	operators map[string]Operator
}

func NewDirectory(creds []Credentials) (*Directory, error) {
	d := &Directory{operators: make(map[string]Operator, len(creds))}
	for _, c := range creds {
		if c.Username == "" {
			return nil, errors.New("operator username is required")
		}
		if _, dup := d.operators[c.Username]; dup {
			return nil, fmt.Errorf("duplicate operator %q", c.Username)
		}

		var hash []byte
		switch {
		case c.PasswordHash != "":
			hash = []byte(c.PasswordHash)
			if _, err := bcrypt.Cost(hash); err != nil {
				return nil, fmt.Errorf("operator %q: invalid password hash: %w", c.Username, err)
			}
		case c.Password != "":
			var err error
			hash, err = bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.MinCost)
			if err != nil {
				return nil, fmt.Errorf("operator %q: hash password: %w", c.Username, err)
			}
		default:
			return nil, fmt.Errorf("operator %q: password or password_hash is required", c.Username)
		}

		d.operators[c.Username] = Operator{
			Username:     c.Username,
			Email:        c.Email,
			PasswordHash: hash,
			Privileged:   c.Privileged,
		}
	}
	return d, nil
}

// Authenticate checks credentials and returns the caller identity. An
// operator without an email is identified by username.
func (d *Directory) Authenticate(username, password string) (domain.Caller, error) {
	op, ok := d.operators[username]
	if !ok {
		return domain.Caller{}, fmt.Errorf("%w: unknown operator", domain.ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword(op.PasswordHash, []byte(password)); err != nil {
		return domain.Caller{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}

	email := op.Email
	if email == "" {
		email = op.Username
	}
	return domain.Caller{Email: email, Privileged: op.Privileged}, nil
}

func (d *Directory) Count() int {
	return len(d.operators)
}

func (d *Directory) Usernames() []string {
	names := make([]string, 0, len(d.operators))
	for name := range d.operators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
