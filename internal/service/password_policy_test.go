package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordProblems(t *testing.T) {
	assert.Empty(t, passwordProblems("Timetable#2024", "ana", "ana@example.com", "Ana", "Lim"))
	assert.Len(t, passwordProblems("1234567"), 2)
	assert.Contains(t, passwordProblems("Password1"), "This password is too common.")
	assert.Contains(t, passwordProblems("rizkiananda", "rizkiananda"), "The password is too similar to the username.")
	assert.Contains(t, passwordProblems("examplecorp", "ana", "ana@examplecorp.com"), "The password is too similar to the email address.")
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, similarity("abc", "abc"), 0.0001)
	assert.InDelta(t, 0.0, similarity("abc", "xyz"), 0.0001)
	assert.InDelta(t, 0.75, similarity("abcd", "bcde"), 0.0001)
}
