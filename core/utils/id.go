package utils

import (
	"strings"

	"terminfinder-api/core/constants"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func GenerateID() (string, error) {
	return gonanoid.Generate(codeAlphabet, 7)
}

// SuggestGroupCode builds a readable group code like "summer-trip-x3k9a1z".
// The name part is trimmed so the result stays within the group code limit.
func SuggestGroupCode(name string) (string, error) {
	id, err := GenerateID()
	if err != nil {
		return "", err
	}

	prefix := slug.Make(strings.TrimSpace(name))
	if prefix == "" {
		return id, nil
	}

	maxPrefix := constants.MaxGroupCodeLength - len(id) - 1
	if len(prefix) > maxPrefix {
		prefix = strings.TrimRight(prefix[:maxPrefix], "-")
	}
	return prefix + "-" + id, nil
}
