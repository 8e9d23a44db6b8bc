package align

import (
	"fmt"
	"strings"
)

// lineWidth is the number of columns per block in Format.
const lineWidth = 60

// Format renders the alignment as a header followed by blocks of query,
// match and target lines. Identical non-gap columns are marked '|'.
func (a Alignment) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Mode: %s\n", a.Mode)
	fmt.Fprintf(&sb, "Score: %d\n", a.Score)
	fmt.Fprintf(&sb, "Identity: %.2f%%\n", a.Identity)
	fmt.Fprintf(&sb, "Query: %d..%d\n", a.QueryStart, a.QueryEnd)
	fmt.Fprintf(&sb, "Target: %d..%d\n", a.TargetStart, a.TargetEnd)

	for i := 0; i < a.Len(); i += lineWidth {
		end := min(i+lineWidth, a.Len())
		sb.WriteByte('\n')
		sb.WriteString("Query:  ")
		sb.WriteString(a.Query[i:end])
		sb.WriteString("\n        ")
		for k := i; k < end; k++ {
			if a.Query[k] == a.Target[k] && a.Query[k] != '-' {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\nTarget: ")
		sb.WriteString(a.Target[i:end])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (a Alignment) String() string {
	return fmt.Sprintf("%s score=%d query=%d..%d target=%d..%d", a.Mode, a.Score, a.QueryStart, a.QueryEnd, a.TargetStart, a.TargetEnd)
}
