package reflection

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/apibook/pkg/errors"
)

// ReadJSON decodes a reflection tree from r.
//
// The input is the root node emitted by the reflection tool; the documented
// module is one of its children (see [Node.Module]). Decoding errors are
// INVALID_INPUT errors. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode reflection tree")
	}
	return &root, nil
}

// ImportJSON reads the reflection tree stored at path.
//
// A missing file is a FILE_NOT_FOUND error; everything else that goes wrong
// while reading or decoding is reported with the path for context.
func ImportJSON(path string) (*Node, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	root, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return root, nil
}

// Count returns the number of nodes in the tree rooted at n, including n,
// its children, signatures and parameters.
func Count(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += Count(c)
	}
	for _, s := range n.Signatures {
		total += Count(s)
	}
	for _, p := range n.Parameters {
		total += Count(p)
	}
	return total
}
