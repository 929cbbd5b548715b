package schedule

// Index holds the current session and block collections and exposes
// read-only per-day views over them. Mutating operations are
// copy-on-write: they return a new Index and leave the receiver intact,
// which is what makes optimistic updates cheap to discard.
type Index struct {
	sessions      []Session
	blocks        []TimeBlock
	hideCancelled bool
}

// NewIndex builds an index over the given collections. Source order is
// preserved so per-day views render deterministically.
func NewIndex(sessions []Session, blocks []TimeBlock) *Index {
	return &Index{sessions: sessions, blocks: blocks}
}

// WithHideCancelled returns a copy of the index with the cancelled-session
// filter set. Filtering is a view option: the records stay in the index.
func (ix *Index) WithHideCancelled(hide bool) *Index {
	out := ix.shallow()
	out.hideCancelled = hide
	return out
}

// HideCancelled reports whether cancelled sessions are filtered from views.
func (ix *Index) HideCancelled() bool {
	return ix.hideCancelled
}

// Sessions returns all sessions in source order, unfiltered.
func (ix *Index) Sessions() []Session {
	return ix.sessions
}

// Blocks returns all time blocks in source order.
func (ix *Index) Blocks() []TimeBlock {
	return ix.blocks
}

// SessionsOn returns the sessions placed on a day, in source order,
// honoring the hide-cancelled view option.
func (ix *Index) SessionsOn(day Day) []Session {
	var out []Session
	for _, s := range ix.sessions {
		if s.Day != day {
			continue
		}
		if ix.hideCancelled && s.IsCancelled() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// BlocksOn returns the time blocks placed on a day, in source order.
func (ix *Index) BlocksOn(day Day) []TimeBlock {
	var out []TimeBlock
	for _, b := range ix.blocks {
		if b.Day == day {
			out = append(out, b)
		}
	}
	return out
}

// SessionByID returns the session with the given id.
func (ix *Index) SessionByID(id int64) (Session, bool) {
	for _, s := range ix.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// BlockByID returns the time block with the given id.
func (ix *Index) BlockByID(id int64) (TimeBlock, bool) {
	for _, b := range ix.blocks {
		if b.ID == id {
			return b, true
		}
	}
	return TimeBlock{}, false
}

// Reschedule returns a new index with one session's placement replaced.
// All other fields of the record are kept.
func (ix *Index) Reschedule(id int64, day Day, start, end string) *Index {
	out := ix.shallow()
	out.sessions = make([]Session, len(ix.sessions))
	copy(out.sessions, ix.sessions)
	for i := range out.sessions {
		if out.sessions[i].ID == id {
			out.sessions[i].Day = day
			out.sessions[i].StartTime = start
			out.sessions[i].EndTime = end
			break
		}
	}
	return out
}

// UpsertOptimistic prepends a client-side-constructed session ahead of the
// authoritative server response, replacing any existing record with the
// same id.
func (ix *Index) UpsertOptimistic(s Session) *Index {
	out := ix.shallow()
	out.sessions = make([]Session, 0, len(ix.sessions)+1)
	out.sessions = append(out.sessions, s)
	for _, existing := range ix.sessions {
		if existing.ID != s.ID {
			out.sessions = append(out.sessions, existing)
		}
	}
	return out
}

// AddBlock returns a new index with the block appended.
func (ix *Index) AddBlock(b TimeBlock) *Index {
	out := ix.shallow()
	out.blocks = make([]TimeBlock, 0, len(ix.blocks)+1)
	out.blocks = append(out.blocks, ix.blocks...)
	out.blocks = append(out.blocks, b)
	return out
}

// RemoveBlock returns a new index without the given block.
func (ix *Index) RemoveBlock(id int64) *Index {
	out := ix.shallow()
	out.blocks = make([]TimeBlock, 0, len(ix.blocks))
	for _, b := range ix.blocks {
		if b.ID != id {
			out.blocks = append(out.blocks, b)
		}
	}
	return out
}

// RescheduleBlock returns a new index with one block's placement replaced.
func (ix *Index) RescheduleBlock(id int64, day Day, start, end string) *Index {
	out := ix.shallow()
	out.blocks = make([]TimeBlock, len(ix.blocks))
	copy(out.blocks, ix.blocks)
	for i := range out.blocks {
		if out.blocks[i].ID == id {
			out.blocks[i].Day = day
			out.blocks[i].Time = start
			out.blocks[i].EndTime = end
			break
		}
	}
	return out
}

func (ix *Index) shallow() *Index {
	cp := *ix
	return &cp
}
