// apps/go-solver/assets/embed.go
//
// Embedded default word lists, used when no list files are configured.
// Lines are trimmed and uppercased; blank lines and # comments are skipped.
// Validation of the words themselves is left to the words package.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

// Names of the embedded lists.
const (
	AnswersFile = "answers.txt"
	AllowedFile = "allowed.txt"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// Lines returns the non-comment lines of an embedded list.
func Lines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}
