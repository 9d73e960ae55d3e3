// Package creds works with user:password dump files.
package creds

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type Credential struct {
	Username string
	Password string
}

func (c Credential) String() string {
	return fmt.Sprintf("%s:%s", c.Username, c.Password)
}

// ParseLine splits a dump line on its first colon. Lines without a
// colon carry no credential and report false.
func ParseLine(line string) (Credential, bool) {
	user, pass, found := strings.Cut(strings.TrimSpace(line), ":")
	if !found {
		return Credential{}, false
	}
	return Credential{Username: user, Password: pass}, true
}

// CountUsers tallies how often each username appears in a dump,
// returning the counts and the usernames in first-seen order.
func CountUsers(r io.Reader) (map[string]int, []string, error) {
	counts := make(map[string]int)
	var order []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if counts[c.Username] == 0 {
			order = append(order, c.Username)
		}
		counts[c.Username]++
	}
	return counts, order, scanner.Err()
}

type UserCount struct {
	Username string
	Count    int
}

// FrequentUsers filters the CountUsers result down to usernames seen
// strictly more than threshold times, preserving first-seen order.
func FrequentUsers(counts map[string]int, order []string, threshold int) []UserCount {
	var out []UserCount
	for _, u := range order {
		if counts[u] > threshold {
			out = append(out, UserCount{Username: u, Count: counts[u]})
		}
	}
	return out
}
