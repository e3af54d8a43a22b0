package sbregex

// Analyze decodes a regex-bytecode payload and returns the equivalent
// conventional regular-expression text, pipelining Decode, Reindex,
// BuildNFA, subset construction, minimization, and state elimination.
func Analyze(payload []byte) (string, error) {
	prog, err := Decode(payload)
	if err != nil {
		return "", err
	}
	prog = prog.Reindex()
	dfa := BuildNFA(prog).Subset().Minimize()
	return dfa.ToRegex(), nil
}
