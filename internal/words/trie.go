package words

// node is one trie level. Children are indexed A..Z.
type node struct {
	next [26]*node
	word bool
}

// trie is a prefix index over upper-case A–Z words.
// It is written only while a Dictionary is being built.
type trie struct {
	root  node
	count int
}

func (t *trie) insert(w string) {
	n := &t.root
	for i := 0; i < len(w); i++ {
		j := w[i] - 'A'
		if n.next[j] == nil {
			n.next[j] = &node{}
		}
		n = n.next[j]
	}
	if !n.word {
		n.word = true
		t.count++
	}
}

// walk follows s from the root; nil when s leaves the index.
func (t *trie) walk(s string) *node {
	n := &t.root
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return nil
		}
		n = n.next[c-'A']
		if n == nil {
			return nil
		}
	}
	return n
}
