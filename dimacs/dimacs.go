// Package dimacs writes CNF formulas in DIMACS format: a `p cnf V C`
// header, one clause per line, each terminated by 0.
package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/slang-lang/slang/sat"
)

var errZeroLiteral = errors.New("dimacs: literal 0 in clause")

// Write emits the CNF in one pass. The header's variable count is the
// largest absolute literal in the body, never 0.
func Write(w io.Writer, cnf sat.CNF) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", cnf.MaxVar(), len(cnf))
	for _, clause := range cnf {
		for _, lit := range clause {
			if lit == 0 {
				return errZeroLiteral
			}
			fmt.Fprintf(bw, "%d ", lit)
		}
		fmt.Fprintf(bw, "0\n")
	}
	return bw.Flush()
}

// WriteFile writes the CNF to path, truncating any previous contents.
func WriteFile(path string, cnf sat.CNF) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open file for writing: %w", err)
	}
	if err := Write(f, cnf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
