package items

// ItemID identifies one concrete item variety.
type ItemID string

// ItemTag identifies a category of item varieties. Tags resolve to their
// member varieties through the item manifest.
type ItemTag string

// ItemKind classifies items either as one exact variety or as any variety
// carrying a tag. The zero value matches nothing.
type ItemKind struct {
	single ItemID
	tag    ItemTag
}

// KindOf builds a kind matching exactly the given variety.
func KindOf(id ItemID) ItemKind {
	return ItemKind{single: id}
}

// KindOfTag builds a kind matching any variety carrying the given tag.
func KindOfTag(tag ItemTag) ItemKind {
	return ItemKind{tag: tag}
}

// Single returns the exact variety this kind matches, if any.
func (k ItemKind) Single() (ItemID, bool) {
	return k.single, k.single != ""
}

// Tag returns the tag this kind matches on, if any.
func (k ItemKind) Tag() (ItemTag, bool) {
	return k.tag, k.single == "" && k.tag != ""
}

// IsZero reports whether the kind matches nothing.
func (k ItemKind) IsZero() bool {
	return k.single == "" && k.tag == ""
}

// Matches reports whether the given variety satisfies this kind under the
// provided manifest.
func (k ItemKind) Matches(id ItemID, manifest *Manifest) bool {
	switch {
	case k.single != "":
		return k.single == id
	case k.tag != "":
		return manifest.HasTag(id, k.tag)
	default:
		return false
	}
}

func (k ItemKind) String() string {
	switch {
	case k.single != "":
		return "item:" + string(k.single)
	case k.tag != "":
		return "tag:" + string(k.tag)
	default:
		return "none"
	}
}

// ItemCount pairs an item variety with a quantity.
type ItemCount struct {
	ID       ItemID `json:"id"`
	Quantity int    `json:"quantity"`
}
