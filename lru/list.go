package lru

// entry is a node in the recency list. The key is kept on the node so
// eviction can find the map entry to drop without a reverse lookup.
type entry[K comparable, V any] struct {
	prev, next *entry[K, V]
	key        K
	value      V
}

// recencyList is a doubly-linked list over cache entries, ordered from
// most-recently-used at the front to least-recently-used at the back.
// The root sentinel keeps insertion and removal free of nil checks.
// The zero value is not valid; use newRecencyList.
type recencyList[K comparable, V any] struct {
	root entry[K, V]
}

func newRecencyList[K comparable, V any]() *recencyList[K, V] {
	l := &recencyList[K, V]{}
	l.init()
	return l
}

func (l *recencyList[K, V]) init() {
	l.root.prev = &l.root
	l.root.next = &l.root
}

// pushFront allocates an entry for key and value at the most-recently-used
// position and returns its handle for the index map.
func (l *recencyList[K, V]) pushFront(key K, value V) *entry[K, V] {
	e := &entry[K, V]{key: key, value: value}
	l.insertFront(e)
	return e
}

func (l *recencyList[K, V]) insertFront(e *entry[K, V]) {
	e.prev = &l.root
	e.next = l.root.next
	e.prev.next = e
	e.next.prev = e
}

// moveToFront promotes an existing entry to most-recently-used.
func (l *recencyList[K, V]) moveToFront(e *entry[K, V]) {
	if l.root.next == e {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	l.insertFront(e)
}

// remove unlinks e and clears its links so removed entries cannot keep
// neighbors alive.
func (l *recencyList[K, V]) remove(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}

// back returns the least-recently-used entry, or nil when the list is empty.
func (l *recencyList[K, V]) back() *entry[K, V] {
	if l.root.prev == &l.root {
		return nil
	}
	return l.root.prev
}

// prevEntry returns the entry one position more recent than e, or nil when
// e is the most recent.
func (l *recencyList[K, V]) prevEntry(e *entry[K, V]) *entry[K, V] {
	if e.prev == &l.root {
		return nil
	}
	return e.prev
}
