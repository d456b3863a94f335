package runner

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/yaklabco/qstripper/pkg/fsutil"
)

// ErrOutputCollision is recorded when two sources would export to the same path.
var ErrOutputCollision = errors.New("output path already claimed by another file")

// OutputPath returns where the export of source goes. The _doc or .doc suffix
// is replaced by ext, keeping the separator, so "letter_doc" becomes
// "letter_txt" and "LETTER.DOC" becomes "LETTER.txt". Other names get ext
// appended. A .gz or .zst suffix is dropped. An empty outputDir means the
// source's own directory.
func OutputPath(source, outputDir, ext string) string {
	base, _ := fsutil.TrimCompressionSuffix(filepath.Base(source))

	name := base + "." + ext
	lower := strings.ToLower(base)
	switch {
	case strings.HasSuffix(lower, qlSuffix) && len(base) > len(qlSuffix):
		name = base[:len(base)-len(qlSuffix)] + "_" + ext
	case strings.HasSuffix(lower, pcSuffix) && len(base) > len(pcSuffix):
		name = base[:len(base)-len(pcSuffix)] + "." + ext
	}

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, name)
}
