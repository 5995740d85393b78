package domain

import "strings"

type nameSet struct {
	names []string
	seen  map[string]struct{}
}

func (s *nameSet) add(name string) {
	if s.seen == nil {
		s.seen = map[string]struct{}{}
	}
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
}

// Buckets accumulates keyword names split by intention flag, each deduplicated
// in first-seen order.
type Buckets struct {
	intentions nameSet
	objects    nameSet
}

func (b *Buckets) Add(k *Keyword) {
	if k.Intention {
		b.intentions.add(k.Name)
		return
	}
	b.objects.add(k.Name)
}

// Collect adds k, its children and grandchildren, its parent and the
// parent's children. The grandparent is never visited.
func (b *Buckets) Collect(k *Keyword) {
	b.Add(k)
	for _, child := range k.Children {
		b.Add(child)
		for _, grandchild := range child.Children {
			b.Add(grandchild)
		}
	}
	if k.Parent == nil {
		return
	}
	b.Add(k.Parent)
	for _, sibling := range k.Parent.Children {
		b.Add(sibling)
	}
}

func (b *Buckets) Intentions() []string {
	return append([]string(nil), b.intentions.names...)
}

func (b *Buckets) Objects() []string {
	return append([]string(nil), b.objects.names...)
}

// QuotedString joins names with spaces, wrapping multi-word names in double quotes.
func QuotedString(names []string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(name, " ") {
			name = `"` + name + `"`
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}
