package domain

// Keyword is a node of the synonym graph. Parent and Children are
// non-owning links resolved by Graph; ParentID 0 marks a root.
type Keyword struct {
	ID        int64
	Name      string
	Intention bool
	ParentID  int64
	Parent    *Keyword
	Children  []*Keyword
}

// Graph owns every keyword node loaded in one pass and links them by parent id.
type Graph struct {
	nodes  []*Keyword
	byID   map[int64]*Keyword
	byName map[string][]*Keyword
}

// NewGraph copies rows and resolves parent/children links. Rows whose
// parent id is unknown, or points at the row itself, stay roots.
func NewGraph(rows []Keyword) *Graph {
	g := &Graph{
		nodes:  make([]*Keyword, 0, len(rows)),
		byID:   make(map[int64]*Keyword, len(rows)),
		byName: make(map[string][]*Keyword, len(rows)),
	}
	for _, row := range rows {
		node := &Keyword{ID: row.ID, Name: row.Name, Intention: row.Intention, ParentID: row.ParentID}
		g.nodes = append(g.nodes, node)
		g.byID[node.ID] = node
		g.byName[node.Name] = append(g.byName[node.Name], node)
	}
	for _, node := range g.nodes {
		if node.ParentID == 0 || node.ParentID == node.ID {
			continue
		}
		parent, ok := g.byID[node.ParentID]
		if !ok {
			continue
		}
		node.Parent = parent
		parent.Children = append(parent.Children, node)
	}
	return g
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) ByID(id int64) (*Keyword, bool) {
	node, ok := g.byID[id]
	return node, ok
}

func (g *Graph) ByName(name string) []*Keyword {
	return g.byName[name]
}

// FirstByName returns the lowest-id keyword carrying name.
func (g *Graph) FirstByName(name string) (*Keyword, bool) {
	nodes := g.byName[name]
	if len(nodes) == 0 {
		return nil, false
	}
	first := nodes[0]
	for _, node := range nodes[1:] {
		if node.ID < first.ID {
			first = node
		}
	}
	return first, true
}

// ByNames returns the keywords matching any of names, grouped in names order.
func (g *Graph) ByNames(names []string) []*Keyword {
	out := make([]*Keyword, 0, len(names))
	seen := map[string]struct{}{}
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, g.byName[name]...)
	}
	return out
}

// HasSynonym reports whether keyword or one of its direct children is named synonym.
func HasSynonym(keyword *Keyword, synonym string) bool {
	if keyword == nil {
		return false
	}
	if keyword.Name == synonym {
		return true
	}
	for _, child := range keyword.Children {
		if child.Name == synonym {
			return true
		}
	}
	return false
}
