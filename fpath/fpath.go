// Package fpath manipulates slash-separated file paths held in str.String
// views. Lookups return views into their argument; rewrites allocate from
// the arena they are given.
package fpath

import (
	"os"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/str"
)

func isSep(c byte) bool { return c == '/' || c == '\\' }

// Fix rewrites backslashes to slashes and collapses empty, "." and ".."
// elements. A leading separator is kept. ".." past the root of an absolute
// path is dropped; in a relative path it is kept. An empty relative result
// is ".".
func Fix(a *arena.Arena, p str.String) str.String {
	if len(p) == 0 {
		return nil
	}
	out := str.Alloc(a, len(p))
	w, root := 0, 0
	abs := isSep(p[0])
	if abs {
		out[0] = '/'
		w, root = 1, 1
	}
	depth := 0
	for i := 0; i < len(p); {
		for i < len(p) && isSep(p[i]) {
			i++
		}
		j := i
		for j < len(p) && !isSep(p[j]) {
			j++
		}
		elem := p[i:j]
		i = j
		switch {
		case len(elem) == 0, len(elem) == 1 && elem[0] == '.':
		case len(elem) == 2 && elem[0] == '.' && elem[1] == '.':
			if depth > 0 {
				seg := out[root:w]
				if k := str.FindLast(seg, str.Lit("/"), 0); k < len(seg) {
					w = root + k
				} else {
					w = root
				}
				depth--
			} else if !abs {
				w = appendElem(out, w, root, elem)
			}
		default:
			w = appendElem(out, w, root, elem)
			depth++
		}
	}
	if w == 0 {
		return str.Lit(".")
	}
	return out[:w:w]
}

func appendElem(out str.String, w, root int, elem str.String) int {
	if w > root {
		out[w] = '/'
		w++
	}
	return w + copy(out[w:], elem)
}

// Full resolves name against the working directory and fixes the result.
func Full(a *arena.Arena, name str.String) (str.String, error) {
	if len(name) > 0 && isSep(name[0]) || hasVolume(name) {
		return Fix(a, name), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	joined := str.Alloc(a, len(wd)+1+len(name))
	n := copy(joined, wd)
	joined[n] = '/'
	copy(joined[n+1:], name)
	return Fix(a, joined), nil
}

// hasVolume reports whether p starts with a drive letter such as "C:".
func hasVolume(p str.String) bool {
	return len(p) >= 2 && p[1] == ':' &&
		(p[0] >= 'a' && p[0] <= 'z' || p[0] >= 'A' && p[0] <= 'Z')
}

// Filename returns the element after the last separator.
func Filename(p str.String) str.String {
	for i := len(p) - 1; i >= 0; i-- {
		if isSep(p[i]) {
			return p[i+1:]
		}
	}
	return p
}

// Directory returns everything before the last separator, or an empty view
// if p has none. The root directory "/" is its own directory.
func Directory(p str.String) str.String {
	for i := len(p) - 1; i >= 0; i-- {
		if isSep(p[i]) {
			if i == 0 {
				return p[:1]
			}
			return p[:i]
		}
	}
	return p[:0]
}

// RemoveExtension strips the final ".ext" from a file name. Dot files such
// as ".bashrc" keep their name.
func RemoveExtension(name str.String) str.String {
	for i := len(name) - 1; i > 0; i-- {
		if isSep(name[i]) {
			break
		}
		if name[i] == '.' && !isSep(name[i-1]) {
			return name[:i]
		}
	}
	return name
}

// Extension returns the extension of the file name in p without its dot,
// or an empty view.
func Extension(p str.String) str.String {
	base := Filename(p)
	stem := RemoveExtension(base)
	if len(stem) == len(base) {
		return base[len(base):]
	}
	return base[len(stem)+1:]
}
