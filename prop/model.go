package prop

import (
	"cmp"
	"slices"
	"strings"

	"github.com/signadot/fieldsnap/kpath"
)

// Model is the flat, path addressed form of a captured object.
type Model struct {
	Records []Record
}

// Len returns the number of record positions, placeholders included.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Records)
}

// Lookup returns the record at path.
func (m *Model) Lookup(path string) (*Record, bool) {
	if m == nil || path == "" {
		return nil, false
	}
	for i := range m.Records {
		if m.Records[i].Path == path {
			return &m.Records[i], true
		}
	}
	return nil, false
}

// Index maps each live path to its position in Records.
func (m *Model) Index() map[string]int {
	if m == nil {
		return nil
	}
	res := make(map[string]int, len(m.Records))
	for i := range m.Records {
		if m.Records[i].IsPlaceholder() {
			continue
		}
		res[m.Records[i].Path] = i
	}
	return res
}

// Live returns the records that are not placeholders, in position order.
func (m *Model) Live() []Record {
	if m == nil {
		return nil
	}
	res := make([]Record, 0, len(m.Records))
	for _, r := range m.Records {
		if !r.IsPlaceholder() {
			res = append(res, r)
		}
	}
	return res
}

func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	return &Model{Records: slices.Clone(m.Records)}
}

// Put stores r at its path, replacing an existing record or taking the
// first placeholder position.
func (m *Model) Put(r Record) {
	if r.IsPlaceholder() {
		return
	}
	if cur, ok := m.Lookup(r.Path); ok {
		*cur = r
		return
	}
	for i := range m.Records {
		if m.Records[i].IsPlaceholder() {
			m.Records[i] = r
			return
		}
	}
	m.Records = append(m.Records, r)
}

// Remove vacates the record at path and every record below it.
// It returns the number of records removed.
func (m *Model) Remove(path string) int {
	if m == nil || path == "" {
		return 0
	}
	target, err := kpath.Parse(path)
	if err != nil {
		return 0
	}
	n := 0
	for i := range m.Records {
		if m.Records[i].IsPlaceholder() {
			continue
		}
		kp, err := kpath.Parse(m.Records[i].Path)
		if err != nil {
			continue
		}
		if kp.Equal(target) || kp.IsChildOf(target) {
			m.Records[i] = Record{}
			n++
		}
	}
	return n
}

// Depth returns the number of segments in path, or 0 if it does not parse.
func Depth(path string) int {
	kp, err := kpath.Parse(path)
	if err != nil {
		return 0
	}
	return kp.Depth()
}

// SortForBuild returns the live records ordered by path depth ascending,
// then path descending. Parents are therefore always seen before their
// children.
func (m *Model) SortForBuild() []Record {
	recs := m.Live()
	depths := make(map[string]int, len(recs))
	for _, r := range recs {
		depths[r.Path] = Depth(r.Path)
	}
	slices.SortStableFunc(recs, func(a, b Record) int {
		if c := cmp.Compare(depths[a.Path], depths[b.Path]); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return recs
}
