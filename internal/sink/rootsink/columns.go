package rootsink

import (
	"fmt"
	"reflect"
	"strings"

	"go-hep.org/x/hep/groot/rtree"

	"github.com/banshee-data/jetforest/internal/jets/subjets"
)

var (
	float32Type      = reflect.TypeOf(float32(0))
	int32Type        = reflect.TypeOf(int32(0))
	tupleListType    = reflect.TypeOf([]subjets.Tuple(nil))
	constituentsType = reflect.TypeOf([]subjets.Constituent(nil))
)

// table holds the column buffers of one record list (jets, generator
// jets or calorimeter jets). Scalars become one array per field sized by
// the list counter. Nested lists are flattened into a per-record length
// column <name>N and value columns sized by the scalar counter n<name>.
type table struct {
	count int32
	name  string // counter branch, e.g. "nref"

	floats   []floatColumn
	ints     []intColumn
	tuples   []tupleColumn
	families []constituentColumn
}

type floatColumn struct {
	name  string
	field int
	buf   []float32
}

type intColumn struct {
	name  string
	field int
	buf   []int32
}

type tupleColumn struct {
	name            string
	field           int
	total           int32
	lens            []int32
	pt, eta, phi, m []float32
}

type constituentColumn struct {
	name               string
	field              int
	total              int32
	lens               []int32
	id                 []int32
	e, pt, eta, phi, m []float32
}

// newTable derives the columns of record type t from its json tags.
func newTable(counter string, t reflect.Type) (*table, error) {
	tb := &table{name: counter}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		switch f.Type {
		case float32Type:
			tb.floats = append(tb.floats, floatColumn{name: name, field: i})
		case int32Type:
			tb.ints = append(tb.ints, intColumn{name: name, field: i})
		case tupleListType:
			tb.tuples = append(tb.tuples, tupleColumn{name: name, field: i})
		case constituentsType:
			tb.families = append(tb.families, constituentColumn{name: name, field: i})
		default:
			return nil, fmt.Errorf("rootsink: unsupported field %s.%s of type %s", t.Name(), f.Name, f.Type)
		}
	}
	return tb, nil
}

// vars returns the tree variables of the table. The counter comes first
// so every array can refer to it.
func (tb *table) vars() []rtree.WriteVar {
	vs := []rtree.WriteVar{{Name: tb.name, Value: &tb.count}}
	for i := range tb.floats {
		c := &tb.floats[i]
		vs = append(vs, rtree.WriteVar{Name: c.name, Value: &c.buf, Count: tb.name})
	}
	for i := range tb.ints {
		c := &tb.ints[i]
		vs = append(vs, rtree.WriteVar{Name: c.name, Value: &c.buf, Count: tb.name})
	}
	for i := range tb.tuples {
		c := &tb.tuples[i]
		n := "n" + c.name
		vs = append(vs,
			rtree.WriteVar{Name: c.name + "N", Value: &c.lens, Count: tb.name},
			rtree.WriteVar{Name: n, Value: &c.total},
			rtree.WriteVar{Name: c.name + "Pt", Value: &c.pt, Count: n},
			rtree.WriteVar{Name: c.name + "Eta", Value: &c.eta, Count: n},
			rtree.WriteVar{Name: c.name + "Phi", Value: &c.phi, Count: n},
			rtree.WriteVar{Name: c.name + "M", Value: &c.m, Count: n},
		)
	}
	for i := range tb.families {
		c := &tb.families[i]
		n := "n" + c.name
		vs = append(vs,
			rtree.WriteVar{Name: c.name + "N", Value: &c.lens, Count: tb.name},
			rtree.WriteVar{Name: n, Value: &c.total},
			rtree.WriteVar{Name: c.name + "Id", Value: &c.id, Count: n},
			rtree.WriteVar{Name: c.name + "E", Value: &c.e, Count: n},
			rtree.WriteVar{Name: c.name + "Pt", Value: &c.pt, Count: n},
			rtree.WriteVar{Name: c.name + "Eta", Value: &c.eta, Count: n},
			rtree.WriteVar{Name: c.name + "Phi", Value: &c.phi, Count: n},
			rtree.WriteVar{Name: c.name + "M", Value: &c.m, Count: n},
		)
	}
	return vs
}

// fill loads the records of list (a slice of the table's record type)
// into the column buffers.
func (tb *table) fill(list reflect.Value) {
	n := list.Len()
	tb.count = int32(n)
	for i := range tb.floats {
		tb.floats[i].buf = tb.floats[i].buf[:0]
	}
	for i := range tb.ints {
		tb.ints[i].buf = tb.ints[i].buf[:0]
	}
	for i := range tb.tuples {
		c := &tb.tuples[i]
		c.total = 0
		c.lens, c.pt, c.eta, c.phi, c.m = c.lens[:0], c.pt[:0], c.eta[:0], c.phi[:0], c.m[:0]
	}
	for i := range tb.families {
		c := &tb.families[i]
		c.total = 0
		c.lens, c.id = c.lens[:0], c.id[:0]
		c.e, c.pt, c.eta, c.phi, c.m = c.e[:0], c.pt[:0], c.eta[:0], c.phi[:0], c.m[:0]
	}

	for r := 0; r < n; r++ {
		rec := list.Index(r)
		for i := range tb.floats {
			c := &tb.floats[i]
			c.buf = append(c.buf, float32(rec.Field(c.field).Float()))
		}
		for i := range tb.ints {
			c := &tb.ints[i]
			c.buf = append(c.buf, int32(rec.Field(c.field).Int()))
		}
		for i := range tb.tuples {
			c := &tb.tuples[i]
			items := rec.Field(c.field).Interface().([]subjets.Tuple)
			c.lens = append(c.lens, int32(len(items)))
			c.total += int32(len(items))
			for _, tp := range items {
				c.pt = append(c.pt, tp.Pt)
				c.eta = append(c.eta, tp.Eta)
				c.phi = append(c.phi, tp.Phi)
				c.m = append(c.m, tp.M)
			}
		}
		for i := range tb.families {
			c := &tb.families[i]
			items := rec.Field(c.field).Interface().([]subjets.Constituent)
			c.lens = append(c.lens, int32(len(items)))
			c.total += int32(len(items))
			for _, k := range items {
				c.id = append(c.id, k.ID)
				c.e = append(c.e, k.E)
				c.pt = append(c.pt, k.Pt)
				c.eta = append(c.eta, k.Eta)
				c.phi = append(c.phi, k.Phi)
				c.m = append(c.m, k.M)
			}
		}
	}
}
