package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

//Verify is a structural smoke test for a round trip: it checks that the
//first marker line of out matches the one of in, i.e. that the writer
//produced the same grammar it was fed. It does not check byte equality
//of the files; numeric fidelity is a separate property with its own
//tests. On mismatch the returned error carries a unified diff of the
//first n lines of both files.
func Verify(in, out string, n int) error {
	inLines, err := headLines(in, n)
	if err != nil {
		return errDecorate(err, "Verify")
	}
	outLines, err := headLines(out, n)
	if err != nil {
		return errDecorate(err, "Verify")
	}
	if len(inLines) == 0 || len(outLines) == 0 {
		return Error{"nothing to verify: empty file", in, []string{"Verify"}, true}
	}
	if strings.TrimSpace(inLines[0]) == strings.TrimSpace(outLines[0]) {
		return nil
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        inLines,
		B:        outLines,
		FromFile: in,
		ToFile:   out,
		Context:  2,
	})
	return Error{fmt.Sprintf("header format mismatch:\n%s", diff), out, []string{"Verify"}, true}
}

//headLines returns up to n leading lines of a (possibly compressed)
//dump file, newline included.
func headLines(name string, n int) ([]string, error) {
	f, z, err := openReader(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"headLines"}, true}
	}
	defer f.Close()
	if z != nil {
		defer z.Close()
	}
	var r io.Reader = f
	if z != nil {
		r = z
	}
	h := bufio.NewReader(r)
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line, err := h.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err != nil {
			break
		}
	}
	return lines, nil
}
