package knowledge

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCategory   = errors.New("unknown category")
	ErrMissingCategory   = errors.New("missing category")
	ErrDuplicateQuestion = errors.New("duplicate question")
	ErrTooFewQuestions   = errors.New("category needs at least 2 questions")
)

// RequiredKeys lists the category keys every knowledge base must define.
var RequiredKeys = []string{Products, Ordering, Shipping, Support, General}

type document struct {
	Categories []Category `yaml:"categories"`
}

// Load returns the categories from path, or the built-in Seed when path is
// empty.
func Load(path string) ([]Category, error) {
	if path == "" {
		return Seed(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a YAML knowledge base from path.
func LoadFile(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML knowledge base of the form
//
//	categories:
//	  - key: products
//	    title: Products
//	    icon: "🧺"
//	    questions:
//	      - question: ...
//	        answer: ...
func Parse(data []byte) ([]Category, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse knowledge file: %w", err)
	}
	if err := Validate(doc.Categories); err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// Validate checks that categories cover exactly the required keys and that
// each one holds at least two distinct, non-empty questions.
func Validate(categories []Category) error {
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if !isRequiredKey(c.Key) {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, c.Key)
		}
		if seen[c.Key] {
			return fmt.Errorf("category %q defined twice", c.Key)
		}
		seen[c.Key] = true

		if len(c.Questions) < 2 {
			return fmt.Errorf("%w: %q has %d", ErrTooFewQuestions, c.Key, len(c.Questions))
		}
		questions := make(map[string]bool, len(c.Questions))
		for _, qa := range c.Questions {
			if strings.TrimSpace(qa.Question) == "" || strings.TrimSpace(qa.Answer) == "" {
				return fmt.Errorf("category %q has an empty question or answer", c.Key)
			}
			if questions[qa.Question] {
				return fmt.Errorf("%w: %q in %q", ErrDuplicateQuestion, qa.Question, c.Key)
			}
			questions[qa.Question] = true
		}
	}

	for _, key := range RequiredKeys {
		if !seen[key] {
			return fmt.Errorf("%w: %q", ErrMissingCategory, key)
		}
	}
	return nil
}

func isRequiredKey(key string) bool {
	for _, k := range RequiredKeys {
		if k == key {
			return true
		}
	}
	return false
}
