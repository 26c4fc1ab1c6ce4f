package lru

// node is an element of list. It carries its key so eviction can find the
// map entry to delete.
type node[K comparable] struct {
	key        K
	prev, next *node[K]
}

// list orders keys by recency: head is the most recently used, tail the
// least. It is not safe for concurrent use.
type list[K comparable] struct {
	head, tail *node[K]
	len        int
}

func (l *list[K]) pushFront(key K) *node[K] {
	n := &node[K]{key: key}
	l.linkFront(n)
	return n
}

func (l *list[K]) moveToFront(n *node[K]) {
	if n == l.head {
		return
	}
	l.unlink(n)
	l.linkFront(n)
}

// removeOldest unlinks the tail and returns its key.
func (l *list[K]) removeOldest() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	n := l.tail
	l.unlink(n)
	return n.key, true
}

func (l *list[K]) clear() {
	l.head, l.tail, l.len = nil, nil, 0
}

func (l *list[K]) linkFront(n *node[K]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

func (l *list[K]) unlink(n *node[K]) {
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
	l.len--
}
