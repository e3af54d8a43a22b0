package fsa

import "github.com/sbplx/sbplx/diag"

// Analyze decodes an FSA pattern payload and enumerates the finite set of
// path strings it accepts, pipelining Decode, Reindex, and Enumerate.
func Analyze(payload []byte, globalVars []string) ([]string, []diag.Warning, error) {
	prog, err := Decode(payload)
	if err != nil {
		return nil, nil, err
	}
	prog, err = prog.Reindex()
	if err != nil {
		return nil, nil, err
	}
	return Enumerate(prog, globalVars)
}
