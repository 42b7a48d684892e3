package str

import (
	"iter"

	"github.com/pavanmanishd/fexp/arena"
)

// Node is one element of a List.
type Node struct {
	Str  String
	Next *Node
}

// List is an append-only singly-linked list of strings. It has no removal
// primitive; drop a list by rewinding the arena its nodes came from.
type List struct {
	First     *Node
	Last      *Node
	NodeCount int
	TotalSize int
}

// PushNode appends a node whose storage the caller owns. Nodes must live on
// the Go heap or in static data: a node placed in arena memory would hide
// its Next pointer from the garbage collector.
func (l *List) PushNode(n *Node) {
	n.Next = nil
	if l.Last == nil {
		l.First = n
	} else {
		l.Last.Next = n
	}
	l.Last = n
	l.NodeCount++
	l.TotalSize += len(n.Str)
}

// Push copies s into a and appends a node for it. The node itself is a Go
// heap value so that nodes added later with PushNode stay reachable.
func (l *List) Push(a *arena.Arena, s String) {
	l.PushNode(&Node{Str: Copy(a, s)})
}

// Equals reports whether both lists hold the same strings in the same order.
func (l *List) Equals(other *List) bool {
	if l.NodeCount != other.NodeCount || l.TotalSize != other.TotalSize {
		return false
	}
	for x, y := l.First, other.First; x != nil; x, y = x.Next, y.Next {
		if !Eq(x.Str, y.Str) {
			return false
		}
	}
	return true
}

// Contains reports whether any node equals needle.
func (l *List) Contains(needle String) bool {
	for n := l.First; n != nil; n = n.Next {
		if Eq(n.Str, needle) {
			return true
		}
	}
	return false
}

// Flatten concatenates every node into one new string.
func (l *List) Flatten(a *arena.Arena) String {
	dst := Alloc(a, l.TotalSize)
	w := 0
	for n := l.First; n != nil; n = n.Next {
		w += copy(dst[w:], n.Str)
	}
	return dst
}

// Join is Flatten with sep between nodes.
func (l *List) Join(a *arena.Arena, sep String) String {
	if l.NodeCount == 0 {
		return nil
	}
	dst := Alloc(a, l.TotalSize+(l.NodeCount-1)*len(sep))
	w := 0
	for n := l.First; n != nil; n = n.Next {
		if n != l.First {
			w += copy(dst[w:], sep)
		}
		w += copy(dst[w:], n.Str)
	}
	return dst
}

// All iterates over the list in order.
func (l *List) All() iter.Seq[String] {
	return func(yield func(String) bool) {
		for n := l.First; n != nil; n = n.Next {
			if !yield(n.Str) {
				return
			}
		}
	}
}
