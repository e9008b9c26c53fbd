package zip

import (
	"sort"
	"strings"
)

// buildTree post-processes a flat central-directory entry list into a
// rooted directory tree, synthesising intermediate directory nodes for
// paths that are only implicitly present (§4.6). It also returns a
// dictionary from normalised path (no leading/trailing "/") to directory
// entry, per the archive view in §3.
func buildTree(entries []*Entry) (*Entry, map[string]*Entry) {
	root := newRoot()
	dirs := map[string]*Entry{"": root}

	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsDirectory != sorted[j].IsDirectory {
			return sorted[i].IsDirectory // directories precede files
		}
		return sorted[i].Name < sorted[j].Name
	})

	for _, e := range sorted {
		components := strings.Split(strings.Trim(e.Name, "/"), "/")
		current := root
		cumulative := ""

		lastIdx := len(components) - 1
		for i, comp := range components {
			if comp == "" {
				continue
			}
			cumulative += comp + "/"
			isTerminal := i == lastIdx

			if isTerminal && !e.IsDirectory {
				// Terminal component of a file entry: attach directly,
				// don't register it in dirs.
				e.Parent = current
				current.Children = append(current.Children, e)
				continue
			}

			if existing, ok := dirs[cumulative]; ok {
				current = existing
				continue
			}

			var dirEntry *Entry
			if isTerminal && e.IsDirectory {
				dirEntry = e
			} else {
				dirEntry = &Entry{
					Name:        cumulative,
					Timestamp:   e.Timestamp,
					IsDirectory: true,
				}
			}
			dirEntry.Parent = current
			current.Children = append(current.Children, dirEntry)
			dirs[cumulative] = dirEntry
			current = dirEntry
		}
	}

	byPath := make(map[string]*Entry, len(dirs))
	for path, e := range dirs {
		byPath[normalizeName(path)] = e
	}
	return root, byPath
}
