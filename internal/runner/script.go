package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyName is returned by SaveScript for a blank file name.
var ErrEmptyName = errors.New("enter a file name")

// DefaultSource is the editor's starting snippet.
const DefaultSource = `# Welcome to the Python editor!
# Write your code here and press ctrl+r to run it.

print("Hello, world!")

# Example: a simple calculator
a = 10
b = 5
print(f"{a} + {b} = {a + b}")
print(f"{a} - {b} = {a - b}")
print(f"{a} * {b} = {a * b}")
print(f"{a} / {b} = {a / b}")
`

// SaveScript writes source to dir/name, replacing any existing file, and
// returns the written path. name must be a plain file name; ".py" is
// appended when it has no extension.
func SaveScript(dir, name, source string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if filepath.Ext(name) == "" {
		name += ".py"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create scripts dir: %w", err)
	}
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("save script: %w", err)
	}
	if _, err := tmp.WriteString(source); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save script: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save script: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save script: %w", err)
	}
	return path, nil
}
