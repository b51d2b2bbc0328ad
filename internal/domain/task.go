// Package domain contains core business entities and interfaces.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// TaskHashLength is the number of hex characters in a task hash.
const TaskHashLength = 8

// Task is one checklist item of a spec document.
// Tasks are rebuilt from the document on every run and never mutated.
// Fields are ordered to minimize memory padding.
type Task struct {
	Hash        string `json:"hash"`        // 8 lowercase hex chars derived from Description
	Description string `json:"description"` // Item text after the checkbox
	Ordinal     int    `json:"ordinal"`     // 1-based position among all checklist lines
	Checked     bool   `json:"checked"`     // Checkbox state in the document
}

// TaskHash returns the stable identity of a task description.
// The description is trimmed, hashed with SHA-256 and truncated to 32 bits.
// Identical descriptions always produce identical hashes, so two verbatim
// duplicates in one document cannot be told apart.
func TaskHash(description string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(description)))
	return hex.EncodeToString(sum[:])[:TaskHashLength]
}

// IsTaskHash reports whether s has the shape of a task hash.
func IsTaskHash(s string) bool {
	if len(s) != TaskHashLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
