package item

import (
	"slices"
	"strings"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
)

// GroupIndex maps an item-group slug to the groups carrying it, one per
// source
type GroupIndex map[string][]*document.Document

// BuildGroupIndex indexes the item-group documents in docs
func BuildGroupIndex(docs []*document.Document) GroupIndex {
	idx := make(GroupIndex)
	for _, doc := range docs {
		if doc.Category == document.CategoryItemGroup {
			idx[doc.Slug] = append(idx[doc.Slug], doc)
		}
	}
	return idx
}

// find returns the group named name, preferring one from the same source
func (idx GroupIndex) find(name, sourceBook string) *document.Document {
	groups := idx[document.Slugify(name)]
	if len(groups) == 0 {
		return nil
	}
	for _, g := range groups {
		if g.Ref().Source == normalize(sourceBook) {
			return g
		}
	}
	return groups[0]
}

// LinkGroups returns docs with tool group references and item-group member
// lists made to agree. Tools whose type code names a group point at that
// group and appear in its members; tools a group already lists point back
// at it; members naming a converted document take that document's
// reference. A tool listed by some other group moves to its type-code
// group and leaves the listing group's members. Input documents are not modified; changed documents are
// copies and order is preserved.
func LinkGroups(docs []*document.Document) []*document.Document {
	out := make([]*document.Document, len(docs))
	byIdentity := make(map[string]*document.Document, len(docs))
	for i, doc := range docs {
		out[i] = clone(doc)
		if doc.Category != document.CategoryItemGroup {
			byIdentity[memberKey(doc.Slug, doc.Source.Book)] = out[i]
		}
	}

	idx := BuildGroupIndex(out)

	// members to converted documents, then tools back to their group
	memberOf := make(map[*document.Document]*document.Document)
	for _, doc := range out {
		data, ok := doc.PluginData.(*document.ItemGroupData)
		if !ok {
			continue
		}
		for i, ref := range data.Members {
			target, ok := byIdentity[memberKey(ref.Slug, ref.Source)]
			if !ok {
				continue
			}
			data.Members[i] = target.Ref()
			if _, isTool := target.PluginData.(*document.ToolData); isTool {
				if _, claimed := memberOf[target]; !claimed {
					memberOf[target] = doc
				}
			}
		}
	}

	for _, doc := range out {
		tool, ok := doc.PluginData.(*document.ToolData)
		if !ok {
			continue
		}
		group := memberOf[doc]
		if name, grouped := GroupNames[tool.TypeCode]; grouped {
			if g := idx.find(name, doc.Source.Book); g != nil {
				if group != nil && group != g {
					removeMember(group.PluginData.(*document.ItemGroupData), doc.Ref())
				}
				group = g
			}
		}
		if group == nil {
			continue
		}
		ref := group.Ref()
		tool.Group = &ref
		addMember(group.PluginData.(*document.ItemGroupData), doc.Ref())
	}

	return out
}

func addMember(data *document.ItemGroupData, ref document.Reference) {
	for _, m := range data.Members {
		if m == ref {
			return
		}
	}
	data.Members = append(data.Members, ref)
}

func removeMember(data *document.ItemGroupData, ref document.Reference) {
	data.Members = slices.DeleteFunc(data.Members, func(m document.Reference) bool {
		return m == ref
	})
}

func memberKey(slug, sourceBook string) string {
	return normalize(sourceBook) + ":" + slug
}

func normalize(sourceBook string) string {
	return strings.ToLower(strings.TrimSpace(sourceBook))
}

// clone copies a document deeply enough that LinkGroups can change its
// group reference or member list
func clone(doc *document.Document) *document.Document {
	c := *doc
	switch data := doc.PluginData.(type) {
	case *document.ToolData:
		d := *data
		if data.Group != nil {
			g := *data.Group
			d.Group = &g
		}
		c.PluginData = &d
	case *document.ItemGroupData:
		d := *data
		d.Members = append([]document.Reference(nil), data.Members...)
		c.PluginData = &d
	}
	return &c
}
