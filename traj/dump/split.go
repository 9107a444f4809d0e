package dump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

//Split cuts a dump file into raw byte chunks of at most chunkMB
//megabytes, named <name>_part1.voro, <name>_part2.voro and so on next
//to the input. The cut points ignore snapshot boundaries; the pieces
//are meant for transport, not for parsing in isolation. It returns the
//paths of the chunks written.
func Split(name string, chunkMB int) ([]string, error) {
	if chunkMB <= 0 {
		return nil, Error{fmt.Sprintf("nonsense chunk size: %d MB", chunkMB), name, []string{"Split"}, true}
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Split"}, true}
	}
	defer f.Close()
	chunk := int64(chunkMB) * 1024 * 1024
	dir := filepath.Dir(name)
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	var out []string
	for i := 1; ; i++ {
		part := filepath.Join(dir, fmt.Sprintf("%s_part%d.voro", base, i))
		o, err := os.Create(part)
		if err != nil {
			return out, Error{UnableToOpen + ": " + err.Error(), part, []string{"Split"}, true}
		}
		n, err := io.CopyN(o, f, chunk)
		o.Close()
		if n == 0 {
			os.Remove(part)
			if err == io.EOF || err == nil {
				break
			}
			return out, Error{err.Error(), name, []string{"Split"}, true}
		}
		out = append(out, part)
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, Error{err.Error(), name, []string{"Split"}, true}
		}
	}
	return out, nil
}
