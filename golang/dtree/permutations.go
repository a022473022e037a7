package dtree

//TripleIterable is the interface for iteration over ordered triples of distinct indices.
type TripleIterable interface {
	HasNext() bool
	GetNext() [3]int
	Rank() int
}

//Permutations iterates over ordered triples of distinct indices from [0, n) in
//lexicographic order, the same order as the 3-permutations of range(n).
//Rank counts the triples returned so far, so after GetNext it is the 1-based
//enumeration position of the returned triple.
type Permutations struct {
	n         int
	next      [3]int
	rank, end int
}

//PermutationCount returns the number of ordered triples of distinct indices from [0, n).
func PermutationCount(n int) int {
	if n < 3 {
		return 0
	}
	return n * (n - 1) * (n - 2)
}

//NewPermutations initializes an iterator over all ordered triples from [0, n).
func NewPermutations(n int) *Permutations {
	return &Permutations{n: n, next: [3]int{0, 1, 2}, rank: 0, end: PermutationCount(n)}
}

//NewRootPermutations initializes an iterator over the triples whose first index is root.
//Ranks continue the global enumeration, so they agree with NewPermutations.
func NewRootPermutations(n, root int) *Permutations {
	perRoot := (n - 1) * (n - 2)
	if n < 3 || root < 0 || root >= n {
		return &Permutations{n: n}
	}
	b := skip(0, root, root)
	return &Permutations{
		n:    n,
		next: [3]int{root, b, skip(0, root, b)},
		rank: root * perRoot,
		end:  (root + 1) * perRoot,
	}
}

//HasNext checks whether there are more triples in the iterator.
func (p *Permutations) HasNext() bool {
	return p.rank < p.end
}

//GetNext returns the next triple and moves the iterator forward.
func (p *Permutations) GetNext() [3]int {
	current := p.next
	p.rank++
	p.advance()
	return current
}

//Rank returns the enumeration position of the last returned triple.
func (p *Permutations) Rank() int {
	return p.rank
}

func (p *Permutations) advance() {
	a, b, c := p.next[0], p.next[1], p.next[2]
	if c = skip(c+1, a, b); c < p.n {
		p.next[2] = c
		return
	}
	if b = skip(b+1, a, a); b < p.n {
		p.next = [3]int{a, b, skip(0, a, b)}
		return
	}
	a++
	b = skip(0, a, a)
	p.next = [3]int{a, b, skip(0, a, b)}
}

func skip(v, x, y int) int {
	for v == x || v == y {
		v++
	}
	return v
}
