package sbregex

import "sort"

// DFA is a deterministic automaton over the ENFA's symbol alphabet,
// produced by subset construction and then minimized by partition
// refinement (grounded on DFA.from_nfa(nfa, minify=True) in
// original_source's regex_parser.py; construction style follows the
// teacher package's dfa/lazy determinization loop, done eagerly here since
// the alphabet is small and finite rather than lazily per-byte).
type DFA struct {
	start      int
	final      map[int]bool
	trans      map[int]map[int]int // state -> symbol -> target state
	symbolText map[int]string
	numStates  int
}

type stateKey string

func keyOf(states map[StateID]bool) stateKey {
	ids := make([]int, 0, len(states))
	for s := range states {
		ids = append(ids, int(s))
	}
	sort.Ints(ids)
	buf := make([]byte, 0, len(ids)*4)
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, []byte(itoa(id))...)
	}
	return stateKey(buf)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var tmp [20]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		tmp[i] = '-'
	}
	return string(tmp[i:])
}

// Subset performs classic subset construction (powerset construction),
// collapsing the ENFA into a DFA over the same symbol alphabet.
func (e *ENFA) Subset() *DFA {
	startSet := e.epsilonClosure(map[StateID]bool{e.start: true})
	startKey := keyOf(startSet)

	sets := map[stateKey]map[StateID]bool{startKey: startSet}
	ids := map[stateKey]int{startKey: 0}
	order := []stateKey{startKey}

	d := &DFA{
		final:      make(map[int]bool),
		trans:      make(map[int]map[int]int),
		symbolText: e.symbolText,
	}

	for i := 0; i < len(order); i++ {
		key := order[i]
		set := sets[key]
		id := ids[key]
		if e.isFinal(set) {
			d.final[id] = true
		}

		bySymbol := make(map[int]map[StateID]bool)
		for s := range set {
			for _, t := range e.trans[s] {
				if t.Symbol == epsilon {
					continue
				}
				if bySymbol[t.Symbol] == nil {
					bySymbol[t.Symbol] = make(map[StateID]bool)
				}
				bySymbol[t.Symbol][t.To] = true
			}
		}

		syms := make([]int, 0, len(bySymbol))
		for sym := range bySymbol {
			syms = append(syms, sym)
		}
		sort.Ints(syms)

		for _, sym := range syms {
			closure := e.epsilonClosure(bySymbol[sym])
			ck := keyOf(closure)
			targetID, ok := ids[ck]
			if !ok {
				targetID = len(order)
				ids[ck] = targetID
				sets[ck] = closure
				order = append(order, ck)
			}
			if d.trans[id] == nil {
				d.trans[id] = make(map[int]int)
			}
			d.trans[id][sym] = targetID
		}
	}

	d.start = 0
	d.numStates = len(order)
	return d
}

// Minimize reduces the DFA to an equivalent minimal DFA via iterative
// partition refinement (Moore/Hopcroft-style: start with the
// final/non-final partition, repeatedly split blocks whose members
// transition to different blocks on some symbol, until no block splits
// further).
func (d *DFA) Minimize() *DFA {
	if d.numStates == 0 {
		return d
	}

	alphabet := make(map[int]bool)
	for _, edges := range d.trans {
		for sym := range edges {
			alphabet[sym] = true
		}
	}

	blockOf := make([]int, d.numStates)
	for s := 0; s < d.numStates; s++ {
		if d.final[s] {
			blockOf[s] = 1
		}
	}

	for {
		changed := false
		signature := make([]string, d.numStates)
		for s := 0; s < d.numStates; s++ {
			sig := itoa(blockOf[s])
			for sym := range alphabet {
				target := -1
				if to, ok := d.trans[s][sym]; ok {
					target = blockOf[to]
				}
				sig += "|" + itoa(sym) + ":" + itoa(target)
			}
			signature[s] = sig
		}

		sigToBlock := make(map[string]int)
		newBlockOf := make([]int, d.numStates)
		for s := 0; s < d.numStates; s++ {
			id, ok := sigToBlock[signature[s]]
			if !ok {
				id = len(sigToBlock)
				sigToBlock[signature[s]] = id
			}
			newBlockOf[s] = id
		}
		for s := 0; s < d.numStates; s++ {
			if newBlockOf[s] != blockOf[s] {
				changed = true
			}
		}
		blockOf = newBlockOf
		if !changed {
			break
		}
	}

	numBlocks := 0
	for _, b := range blockOf {
		if b+1 > numBlocks {
			numBlocks = b + 1
		}
	}

	out := &DFA{
		final:      make(map[int]bool),
		trans:      make(map[int]map[int]int),
		symbolText: d.symbolText,
		numStates:  numBlocks,
		start:      blockOf[d.start],
	}
	for s := 0; s < d.numStates; s++ {
		b := blockOf[s]
		if d.final[s] {
			out.final[b] = true
		}
		for sym, to := range d.trans[s] {
			if out.trans[b] == nil {
				out.trans[b] = make(map[int]int)
			}
			out.trans[b][sym] = blockOf[to]
		}
	}
	return out
}
