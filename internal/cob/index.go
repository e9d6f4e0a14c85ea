package cob

// lineRange is the [start, end) byte range of one record in the JSONL file.
type lineRange struct {
	start int64
	end   int64
}

type objectKey struct {
	typ recordType
	id  string
}

// fileIndex keeps the byte range of the latest record per object and the
// order objects first appeared in, so reads go straight to file.ReadAt.
type fileIndex struct {
	latest map[objectKey]lineRange
	order  map[recordType][]string
}

func newFileIndex() *fileIndex {
	return &fileIndex{
		latest: make(map[objectKey]lineRange),
		order:  make(map[recordType][]string),
	}
}

// onAppend records that rec occupies [offset, offset+length).
func (idx *fileIndex) onAppend(rec record, offset, length int64) {
	id := rec.objectID()
	if id == "" {
		return
	}
	key := objectKey{typ: rec.Type, id: id}
	if _, seen := idx.latest[key]; !seen {
		idx.order[rec.Type] = append(idx.order[rec.Type], id)
	}
	idx.latest[key] = lineRange{start: offset, end: offset + length}
}

func (idx *fileIndex) lookup(typ recordType, id string) (lineRange, bool) {
	r, ok := idx.latest[objectKey{typ: typ, id: id}]
	return r, ok
}

// ids returns a copy of the ids of typ in first-seen order.
func (idx *fileIndex) ids(typ recordType) []string {
	out := make([]string, len(idx.order[typ]))
	copy(out, idx.order[typ])
	return out
}
