package corpus

// Tag identifies an intent.
type Tag string

const (
	Greeting    Tag = "greeting"
	HangoutInfo Tag = "hangout_info"
	Ranking     Tag = "ranking"
	Location    Tag = "location"
	Recommend   Tag = "recommend"
	Confirm     Tag = "confirm"
	Deny        Tag = "deny"
	Cancel      Tag = "cancel"
	Thanks      Tag = "thanks"
	ListStores  Tag = "list_stores"
	Detail      Tag = "detail"
	Unknown     Tag = "unknown"
)

// Tags returns every tag, Unknown last.
func Tags() []Tag {
	return []Tag{
		Greeting, HangoutInfo, Ranking, Location, Recommend, Confirm,
		Deny, Cancel, Thanks, ListStores, Detail, Unknown,
	}
}

func (t Tag) valid() bool {
	for _, known := range Tags() {
		if t == known {
			return true
		}
	}
	return false
}

// IsAnswer reports whether the tag answers a yes/no question.
func (t Tag) IsAnswer() bool {
	return t == Confirm || t == Deny
}

func (t Tag) String() string {
	return string(t)
}
