package dataset

// Clone returns a deep copy of the node and its descendants.
func (n *TreeNode) Clone() *TreeNode {
	if n == nil {
		return nil
	}
	c := *n
	c.Extra = n.Extra.Clone()
	if n.Rows != nil {
		c.Rows = make([]*TreeNode, len(n.Rows))
		for i, row := range n.Rows {
			c.Rows[i] = row.Clone()
		}
	}
	return &c
}

// Clone returns a copy of the record that shares nothing with v.
func (v *VersionRecord) Clone() *VersionRecord {
	if v == nil {
		return nil
	}
	c := *v
	c.Extra = v.Extra.Clone()
	return &c
}

// Clone deep-copies the extension map, including nested maps and lists.
func (e Extension) Clone() Extension {
	if e == nil {
		return nil
	}
	out := make(Extension, len(e))
	for k, v := range e {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case Extension:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	}
	return v
}

// Clone deep-copies the whole dataset.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	c := &Dataset{Jobs: d.Jobs.Clone()}
	if d.Versions != nil {
		c.Versions = make([]*VersionRecord, len(d.Versions))
		for i, v := range d.Versions {
			c.Versions[i] = v.Clone()
		}
	}
	return c
}

// CloneVersions deep-copies a slice of records.
func CloneVersions(in []*VersionRecord) []*VersionRecord {
	out := make([]*VersionRecord, len(in))
	for i, v := range in {
		out[i] = v.Clone()
	}
	return out
}

// CloneValue deep-copies a value returned by address resolution so the
// caller cannot reach back into the dataset.
func CloneValue(v any) any {
	switch t := v.(type) {
	case *TreeNode:
		return t.Clone()
	case *VersionRecord:
		return t.Clone()
	case []*TreeNode:
		out := make([]*TreeNode, len(t))
		for i, n := range t {
			out[i] = n.Clone()
		}
		return out
	case []*VersionRecord:
		return CloneVersions(t)
	}
	return cloneValue(v)
}
