package candidate

// Item is one selectable string. Its text never changes after load;
// the emitted flag is set when the item was committed without
// leaving the menu.
type Item struct {
	id      int
	text    string
	hp      bool
	emitted bool
}

// NewItem creates an item at position id of its store.
func NewItem(id int, text string, hp bool) *Item {
	return &Item{
		id:   id,
		text: text,
		hp:   hp,
	}
}

// ID returns the input position of the item, which is also its
// tie-break rank.
func (it *Item) ID() int {
	return it.id
}

func (it *Item) Text() string {
	return it.text
}

// HighPriority reports whether the text appeared in the high
// priority list at load time.
func (it *Item) HighPriority() bool {
	return it.hp
}

func (it *Item) Emitted() bool {
	return it.emitted
}

func (it *Item) MarkEmitted() {
	it.emitted = true
}
