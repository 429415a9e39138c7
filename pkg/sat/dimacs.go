package sat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDIMACS writes clauses in DIMACS CNF format, preceded by optional
// comment lines.
func WriteDIMACS(w io.Writer, clauses [][]int, comments ...string) error {
	maxVar, err := Validate(clauses)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		fmt.Fprintf(bw, "c %s\n", c)
	}
	fmt.Fprintf(bw, "p cnf %d %d\n", maxVar, len(clauses))
	for _, clause := range clauses {
		for _, lit := range clause {
			bw.WriteString(strconv.Itoa(lit))
			bw.WriteByte(' ')
		}
		bw.WriteString("0\n")
	}
	return bw.Flush()
}
