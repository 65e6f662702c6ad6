package feed

// NoneActive is the ActiveIndex value when no item is eligible to play.
const NoneActive = -1

// PlaybackState decides which single item plays. It is reset whenever the
// list is replaced.
type PlaybackState struct {
	ActiveIndex  int
	PausedByUser bool
}

func initialState() PlaybackState {
	return PlaybackState{ActiveIndex: NoneActive}
}

// ShouldPlay is true for at most one index.
func (s PlaybackState) ShouldPlay(index int) bool {
	return s.ActiveIndex != NoneActive && index == s.ActiveIndex && !s.PausedByUser
}

// visible moves the active item. A pause belongs to the item it was made on,
// so switching to another item drops it; re-reporting the same item keeps it.
func (s PlaybackState) visible(index int) PlaybackState {
	if index == s.ActiveIndex {
		return s
	}
	return PlaybackState{ActiveIndex: index}
}

// togglePause only acts on the active item.
func (s PlaybackState) togglePause(index int) PlaybackState {
	if s.ActiveIndex == NoneActive || index != s.ActiveIndex {
		return s
	}
	s.PausedByUser = !s.PausedByUser
	return s
}
