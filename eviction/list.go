package eviction

// node is one key in a recency list.
type node struct {
	key  string
	prev *node
	next *node
}

// list is a doubly-linked list of keys with a key index, giving O(1)
// push, move and unlink. head is the newest key, tail the oldest.
type list struct {
	nodes map[string]*node
	head  *node
	tail  *node
}

func newList() list {
	return list{nodes: make(map[string]*node)}
}

// touch moves an existing key to the head, or inserts it there.
func (l *list) touch(k string) {
	if n, ok := l.nodes[k]; ok {
		l.unlink(n)
		l.pushFront(n)
		return
	}
	n := &node{key: k}
	l.nodes[k] = n
	l.pushFront(n)
}

// drop removes k if tracked. Neighbours keep their relative order.
func (l *list) drop(k string) {
	if n, ok := l.nodes[k]; ok {
		l.unlink(n)
		delete(l.nodes, k)
	}
}

// popBack removes and returns the oldest key, or "".
func (l *list) popBack() string {
	if l.tail == nil {
		return ""
	}
	k := l.tail.key
	l.drop(k)
	return k
}

func (l *list) reset() {
	*l = newList()
}

func (l *list) len() int {
	return len(l.nodes)
}

func (l *list) pushFront(n *node) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

func (l *list) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
