package reporting

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/service/herd"
)

// WriteLineage prints the family tree as an indented outline, one founder per
// root. maxDepth limits how many generations below the founders are shown;
// zero shows all of them.
func WriteLineage(w io.Writer, lineage *herd.Lineage, maxDepth int) error {
	bw := bufio.NewWriter(w)
	for _, f := range lineage.Founders() {
		fmt.Fprintf(bw, "%s Founder, unit %d\n", f.DisplayName(), f.Unit)
		writeBranch(bw, lineage, f, "", 1, maxDepth)
	}
	return bw.Flush()
}

func writeBranch(w io.Writer, lineage *herd.Lineage, parent models.Animal, prefix string, depth, maxDepth int) {
	if maxDepth > 0 && depth > maxDepth {
		return
	}
	kids := lineage.Children(parent.ID)
	for i, child := range kids {
		branch, indent := "├── ", "│   "
		if i == len(kids)-1 {
			branch, indent = "└── ", "    "
		}
		fmt.Fprintf(w, "%s%s%s Born %d, Gen %d (parent %s)\n",
			prefix, branch, child.DisplayName(), child.BirthYear, child.Generation, parent.DisplayName())
		writeBranch(w, lineage, child, prefix+indent, depth+1, maxDepth)
	}
}
