package service

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLength  = 8
	maxUserSimilarity  = 0.7
	similarityMinParts = 3
)

// Frequently leaked passwords; compared case-insensitively.
var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range strings.Fields(`
		password password1 password123 passw0rd p@ssw0rd 12345678 123456789 1234567890 87654321
		11111111 00000000 qwerty123 qwertyuiop asdfghjkl zxcvbnm1 1q2w3e4r 1qaz2wsx qazwsx123
		abc12345 abcd1234 iloveyou princess sunshine football baseball basketball superman
		batman123 trustno1 letmein1 welcome1 welcome123 monkey123 dragon123 master123 shadow123
		starwars whatever computer internet michelle jennifer charlie1 freedom1 access14
		admin123 administrator changeme secret123 student1 teacher1 timetable schedule
	`) {
		commonPasswords[p] = struct{}{}
	}
}

var attributeSplitter = regexp.MustCompile(`\W+`)

// passwordProblems returns human readable reasons the password is rejected, empty when it is
// acceptable. attributes are the user's username, email and names.
func passwordProblems(password string, attributes ...string) []string {
	var problems []string

	if len([]rune(password)) < minPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		problems = append(problems, "This password is too common.")
	}
	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		problems = append(problems, "This password is entirely numeric.")
	}
	if attr, ok := similarAttribute(password, attributes); ok {
		problems = append(problems, "The password is too similar to the "+attr+".")
	}
	return problems
}

func similarAttribute(password string, attributes []string) (string, bool) {
	lowered := strings.ToLower(password)
	names := []string{"username", "email address", "first name", "last name"}
	for i, value := range attributes {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		parts := append(attributeSplitter.Split(value, -1), value)
		for _, part := range parts {
			if len(part) < similarityMinParts {
				continue
			}
			if similarity(lowered, part) >= maxUserSimilarity {
				name := "user attribute"
				if i < len(names) {
					name = names[i]
				}
				return name, true
			}
		}
	}
	return "", false
}

// similarity is the Ratcliff/Obershelp ratio 2*M/T, where M counts characters in
// recursively found longest common substrings.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb)) / float64(total)
}

func matchingChars(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	startA, startB, size := longestCommon(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:startA], b[:startB]) +
		matchingChars(a[startA+size:], b[startB+size:])
}

func longestCommon(a, b []rune) (int, int, int) {
	bestA, bestB, bestSize := 0, 0, 0
	prev := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		cur := make([]int, len(b)+1)
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > bestSize {
					bestSize = cur[j]
					bestA, bestB = i-bestSize, j-bestSize
				}
			}
		}
		prev = cur
	}
	return bestA, bestB, bestSize
}
