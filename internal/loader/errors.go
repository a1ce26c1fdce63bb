package loader

import "errors"

// ErrEmptyDataset is returned by the file-based loaders when a source
// file contained no usable records at all (every line was blank, a
// comment, or malformed) — per §10, a construction time condition
// distinct from a malformed individual line, which is recorded against
// the caller's ErrorLogger instead of aborting the load. The SQLite
// loaders do not return it; an empty table gives them an empty result.
var ErrEmptyDataset = errors.New("loader: dataset is empty")
