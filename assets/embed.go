// Package assets embeds the default word list and the SQL migrations.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt
var FS embed.FS

// Migrations holds sql/*.sql, applied in lexical order by database.Migrate.
//
//go:embed sql/*.sql
var Migrations embed.FS

func readLines(name string) ([]string, error) {
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

// WordList returns the embedded default vocabulary, uppercased.
func WordList() ([]string, error) {
	return readLines("words.txt")
}
