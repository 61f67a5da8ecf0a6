package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/charsnap/charsnap/internal/domain"
	"github.com/charsnap/charsnap/internal/logging"
)

var errStop = errors.New("stop walking")

// CorpusScanner implements domain.CorpusWalker by walking the filesystem.
// Symbolic links are never followed: a link inside the corpus is skipped, so
// cyclic links cannot loop. Only a root that is itself a link is entered.
type CorpusScanner struct {
	log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *CorpusScanner {
	if log == nil {
		log = logging.Nop()
	}
	return &CorpusScanner{log: log}
}

// Files yields every regular file below root, depth-first in lexical order
// per directory. Each range over the sequence walks the tree again. A
// failure is yielded once as the error value and ends the sequence.
func (s *CorpusScanner) Files(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		walkRoot, err := resolveRoot(root)
		if err != nil {
			yield("", err)
			return
		}

		_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				yield("", domain.FileReadError(path, err))
				return errStop
			}
			if d.IsDir() {
				return nil
			}
			if !d.Type().IsRegular() {
				s.log.Debugw("skipping non-regular entry", "path", path, "mode", d.Type().String())
				return nil
			}
			if !yield(path, nil) {
				return errStop
			}
			return nil
		})
	}
}

func resolveRoot(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", domain.CorpusNotFound(root, err)
	}
	if !info.IsDir() {
		return "", domain.CorpusNotFound(root, fmt.Errorf("not a directory"))
	}

	// WalkDir does not descend into a symlinked root; the trailing
	// separator makes lstat resolve it.
	linfo, err := os.Lstat(root)
	if err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		return root + string(filepath.Separator), nil
	}
	return root, nil
}
