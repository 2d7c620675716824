package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tokens  bool
	Parse   bool
	Eval    bool
	Tseitin bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("SLANG_DEBUG_TOKENS")
	d.Parse = boolEnv("SLANG_DEBUG_PARSE")
	d.Eval = boolEnv("SLANG_DEBUG_EVAL")
	d.Tseitin = boolEnv("SLANG_DEBUG_TSEITIN")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokens() bool {
	return d.Tokens
}
func Parse() bool {
	return d.Parse
}
func Eval() bool {
	return d.Eval
}
func Tseitin() bool {
	return d.Tseitin
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
