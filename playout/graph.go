package playout

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"

	"github.com/gorgonia/playout/game"
)

type groupNode struct {
	ID        game.GroupID
	Colour    game.Colour
	Stones    int
	Liberties int
	State     GroupState
	Owned     float32 // mean fraction of playouts in which the group's points belonged to its colour
}

func (n *groupNode) Name() string { return fmt.Sprintf("g%d", n.ID) }

// ToDot renders the groups of b as a graph in the DOT language. Every group is a node labelled with its
// verdict, and groups that touch are connected. o may be nil.
func ToDot(b TacticalBoard, j *GroupJudgement, o *Ownermap) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(false); err != nil {
		return "", errors.WithStack(err)
	}

	nodes := make(map[game.GroupID]*groupNode)
	type edge struct{ a, b game.GroupID }
	edges := make(map[edge]struct{})
	for i := 0; i < b.Points(); i++ {
		p := game.Single(i)
		id := b.GroupAt(p)
		if id == game.NoGroup {
			continue
		}
		n, ok := nodes[id]
		if !ok {
			n = &groupNode{
				ID:        id,
				Colour:    b.At(p),
				Liberties: len(b.Liberties(p)),
				State:     j.State(id),
			}
			nodes[id] = n
		}
		n.Stones++
		if o != nil {
			n.Owned += o.Fraction(p, n.Colour)
		}
		for _, adj := range b.Adjacent(p) {
			other := b.GroupAt(adj)
			if other == game.NoGroup || other == id {
				continue
			}
			e := edge{id, other}
			if e.a > e.b {
				e.a, e.b = e.b, e.a
			}
			edges[e] = struct{}{}
		}
	}

	ids := make([]game.GroupID, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var buf bytes.Buffer
	for _, id := range ids {
		n := nodes[id]
		n.Owned /= float32(n.Stones)
		if err := groupTmpl.Execute(&buf, n); err != nil {
			return "", errors.WithStack(err)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		buf.Reset()
		if err := g.AddNode("G", n.Name(), attrs); err != nil {
			return "", errors.WithStack(err)
		}
	}

	sorted := make([]edge, 0, len(edges))
	for e := range edges {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].a == sorted[j].a {
			return sorted[i].b < sorted[j].b
		}
		return sorted[i].a < sorted[j].a
	})
	for _, e := range sorted {
		if err := g.AddEdge(nodes[e.a].Name(), nodes[e.b].Name(), false, nil); err != nil {
			return "", errors.WithStack(err)
		}
	}
	return g.String(), nil
}

const groupTmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Group</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Colour</TD><TD>{{printf "%v" .Colour}}</TD></TR>
<TR><TD>Stones</TD><TD>{{.Stones}}</TD></TR>
<TR><TD>Liberties</TD><TD>{{.Liberties}}</TD></TR>
<TR><TD>Owned</TD><TD>{{printf "%.2f" .Owned}}</TD></TR>
<TR><TD>State</TD><TD>{{.State}}</TD></TR>
</TABLE>
>`

var groupTmpl = template.Must(template.New("group").Parse(groupTmplRaw))
