package cli

import (
	"bufio"
	"os"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// ParseInputFile reads a file containing URLs or IDs, one per line.
// Blank lines and lines starting with # are ignored.
func ParseInputFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var refs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs = append(refs, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// CollectInputs combines CLI arguments and file input, dropping repeated
// references. Args come first, then file entries, in order of first
// appearance. References are not resolved here so that unparsable ones are
// reported per item.
func CollectInputs(args []string, filePath string) ([]string, error) {
	seen := stringset.New()
	var refs []string

	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || seen.Contains(ref) {
			return
		}
		seen.Add(ref)
		refs = append(refs, ref)
	}

	for _, arg := range args {
		add(arg)
	}

	if filePath != "" {
		fileRefs, err := ParseInputFile(filePath)
		if err != nil {
			return nil, err
		}
		for _, ref := range fileRefs {
			add(ref)
		}
	}

	return refs, nil
}
