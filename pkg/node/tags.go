package node

// GetTag returns the first tag on n whose id equals markerID. A nil node or a
// node without tags never matches.
func GetTag(n *Node, markerID string) (Tag, bool) {
	if n == nil {
		return Tag{}, false
	}
	for _, tag := range n.Tags {
		if tag.ID == markerID {
			return tag, true
		}
	}
	return Tag{}, false
}

// TagExists reports whether n carries the marker.
func TagExists(n *Node, markerID string) bool {
	_, ok := GetTag(n, markerID)
	return ok
}
