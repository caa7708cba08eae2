package clangast

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/flanksource/commons/logger"
)

// astFilePattern matches the AST dump files the compiler frontend emits;
// discovery is recursive from projectDir.
const astFilePattern = "**/*.ast.json"

// Load walks projectDir for every *.ast.json file, decodes each as JSON and
// parses it into a TranslationUnit. A file whose root is not a
// TranslationUnitDecl is logged and skipped; any other read or decode
// failure is fatal and aborts the load.
func Load(projectDir string) (Snapshot, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(projectDir, astFilePattern))
	if err != nil {
		return nil, fmt.Errorf("%w: globbing %s: %v", ErrFileRead, projectDir, err)
	}

	snapshot := make(Snapshot, 0, len(matches))
	for _, path := range matches {
		tu, err := loadFile(path)
		if err != nil {
			if errors.Is(err, ErrNotTranslationUnit) {
				logger.Warnf("skipping %s: %v", path, err)
				continue
			}
			return nil, err
		}
		snapshot = append(snapshot, tu)
	}

	logger.Debugf("loaded %d translation units from %s", len(snapshot), projectDir)
	return snapshot, nil
}

func loadFile(path string) (*TranslationUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrJSONDecode, path, err)
	}

	return NewTranslationUnit(path, raw)
}
