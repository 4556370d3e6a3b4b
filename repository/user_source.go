package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jaytaylor/html2text"

	"github.com/mayagamaleldin/graduationproject/models"
)

// LoadOptions tunes how raw records are read.
type LoadOptions struct {
	StripHTML bool // convert HTML posts to plain text
}

// LoadUsersFromFile reads the JSON export at path. Any failure yields an
// empty slice together with the error, so callers can log and carry on.
func LoadUsersFromFile(path string, opts LoadOptions) ([]models.RawUserRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return []models.RawUserRecord{}, fmt.Errorf("read users file %s: %w", path, err)
	}
	return ParseUsers(data, opts)
}

// ParseUsers decodes a JSON array of user records. A missing opening or
// closing bracket is added, so a stream of comma separated objects loads too.
func ParseUsers(data []byte, opts LoadOptions) ([]models.RawUserRecord, error) {
	content := bytes.TrimSpace(data)
	if !bytes.HasPrefix(content, []byte("[")) {
		content = append([]byte("["), content...)
	}
	if !bytes.HasSuffix(content, []byte("]")) {
		content = append(content, ']')
	}

	var users []models.RawUserRecord
	if err := json.Unmarshal(content, &users); err != nil {
		return []models.RawUserRecord{}, fmt.Errorf("parse users JSON: %w", err)
	}
	if users == nil {
		users = []models.RawUserRecord{}
	}

	for i := range users {
		if users[i].Posts == nil {
			users[i].Posts = []string{}
		}
		if opts.StripHTML {
			users[i].Posts = stripHTMLPosts(users[i].Posts)
		}
	}
	return users, nil
}

func stripHTMLPosts(posts []string) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		if !strings.ContainsAny(p, "<&") {
			out = append(out, p)
			continue
		}
		text, err := html2text.FromString(p, html2text.Options{OmitLinks: true, TextOnly: true})
		if err != nil {
			out = append(out, p)
			continue
		}
		text = strings.TrimSpace(text)
		// html2text closes block elements with a period the post never had.
		if !strings.Contains(p, ".") {
			text = strings.TrimRight(text, ".")
		}
		out = append(out, text)
	}
	return out
}
