package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wonny/carteira/internal/contracts"
)

// ReadSymbols reads one symbol per line. Lines are trimmed and upper-cased;
// blank lines and lines starting with '#' are skipped. Order is kept.
func ReadSymbols(r io.Reader) ([]string, error) {
	var symbols []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, contracts.NormalizeSymbol(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read symbols: %w", err)
	}

	return symbols, nil
}

// LoadSymbols reads a symbol list file
func LoadSymbols(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol list: %w", err)
	}
	defer f.Close()

	return ReadSymbols(f)
}

// SplitSymbols parses a comma or whitespace separated list
func SplitSymbols(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = contracts.NormalizeSymbol(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
