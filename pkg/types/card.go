package types

// CardType distinguishes directory cards from file cards
type CardType int

const (
	CardDir CardType = iota
	CardFile
)

func (c CardType) String() string {
	if c == CardDir {
		return "dir"
	}
	return "file"
}

// ThumbSource names the endpoint a card's preview image comes from
type ThumbSource int

const (
	ThumbNone ThumbSource = iota
	// ThumbScaled uses the backend's scaled thumbnail endpoint
	ThumbScaled
	// ThumbRaw uses the raw view endpoint, for formats the backend can't scale
	ThumbRaw
)

// Card is one rendered item of the panel
type Card struct {
	Type        CardType
	Path        string
	DisplayName string
	FileType    FileType
	Ext         string
	Thumb       ThumbSource
	// Badge is set on file cards without a thumbnail, e.g. "[File.pdf]"
	Badge string
}

// IsDir reports whether the card opens a directory
func (c Card) IsDir() bool {
	return c.Type == CardDir
}

// Selection is the single selected card, identified by path
type Selection struct {
	SelectedPath string
}

// Empty reports whether nothing is selected
func (s Selection) Empty() bool {
	return s.SelectedPath == ""
}

// BrowseSession is recreated for every fetch; it remembers what the
// previous fetch showed so scroll position can be carried over.
type BrowseSession struct {
	LastDirectory    string
	LastViewMode     ViewMode
	PendingScrollTop int
	// Seen is false until the first fetch has completed
	Seen bool
}
