// pkg/entrypoint/metadata.go
package entrypoint

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/arc-language/extpm/pkg/core"
)

//go:embed command.schema.json
var commandSchema []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(commandSchema))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("command.schema.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("command.schema.json")
})

// MetadataDriven resolves the entry point named by the package's command
// descriptor
type MetadataDriven struct{}

// Name implements Strategy
func (MetadataDriven) Name() string { return "metadata" }

// Resolve implements Strategy
func (MetadataDriven) Resolve(installDir string) (string, error) {
	meta, err := ReadMetadata(filepath.Join(installDir, filepath.FromSlash(MetadataPath)))
	if err != nil {
		return "", err
	}

	root := filepath.Clean(installDir)
	path := filepath.Join(root, filepath.FromSlash(meta.Main))
	if !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: main %q points outside the package", core.ErrMalformedMetadata, meta.Main)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}

// ReadMetadata parses and validates a command descriptor
func ReadMetadata(path string) (*CommandMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading command metadata: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", core.ErrMalformedMetadata, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading command metadata: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling command schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedMetadata, err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedMetadata, err)
	}

	var meta CommandMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedMetadata, err)
	}
	return &meta, nil
}
