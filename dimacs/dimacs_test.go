package dimacs

import (
	"strconv"
	"strings"
	"testing"

	"github.com/slang-lang/slang/sat"
)

func TestWrite(t *testing.T) {
	cnf := sat.CNF{{3}, {3, -1, -2}, {-3, 1}, {-3, 2}}
	var b strings.Builder
	if err := Write(&b, cnf); err != nil {
		t.Fatal(err)
	}
	want := "p cnf 3 4\n3 0\n3 -1 -2 0\n-3 1 0\n-3 2 0\n"
	if b.String() != want {
		t.Errorf("got %q, want %q", b.String(), want)
	}
}

func TestWriteEmptyClause(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, sat.CNF{{1}, {}}); err != nil {
		t.Fatal(err)
	}
	want := "p cnf 1 2\n1 0\n0\n"
	if b.String() != want {
		t.Errorf("got %q, want %q", b.String(), want)
	}
}

func TestWriteRejectsZeroLiteral(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, sat.CNF{{1, 0}}); err == nil {
		t.Error("literal 0 accepted")
	}
}

// Header V equals the max absolute literal in the body, C the clause
// count, and no body literal is 0.
func TestHeaderMatchesBody(t *testing.T) {
	cnf := sat.CNF{{4, -2}, {-4}, {1, 2, 3}}
	var b strings.Builder
	if err := Write(&b, cnf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	maxVar, clauses := 0, 0
	for _, line := range lines[1:] {
		clauses++
		fields := strings.Fields(line)
		if fields[len(fields)-1] != "0" {
			t.Errorf("clause %q not terminated by 0", line)
		}
		for _, f := range fields[:len(fields)-1] {
			v, err := strconv.Atoi(f)
			if err != nil {
				t.Fatal(err)
			}
			if v == 0 {
				t.Errorf("clause %q holds literal 0", line)
			}
			if v < 0 {
				v = -v
			}
			if v > maxVar {
				maxVar = v
			}
		}
	}
	wantHeader := "p cnf " + strconv.Itoa(maxVar) + " " + strconv.Itoa(clauses)
	if lines[0] != wantHeader {
		t.Errorf("header %q, want %q", lines[0], wantHeader)
	}
}
