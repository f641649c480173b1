package render

// frame is one open list at a given nesting level during reconstruction.
type frame struct {
	level   int
	ordered bool
}

// frameStack tracks the currently open lists, shallowest first. The
// transition rules live in closesFor/opensFor so the reconstruction loops
// in html.go and markdown.go share one set of semantics.
type frameStack struct {
	frames []frame
}

func (s *frameStack) push(f frame) {
	s.frames = append(s.frames, f)
}

func (s *frameStack) pop() frame {
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

func (s *frameStack) top() frame {
	return s.frames[len(s.frames)-1]
}

func (s *frameStack) empty() bool {
	return len(s.frames) == 0
}

// closesFor reports whether the top frame must close before emitting an item
// at the given level and kind: the frame is deeper than the item, or sits at
// the same level with the other kind. A same-level same-kind frame stays
// open, so level transitions produce exactly one close each.
func (s *frameStack) closesFor(level int, ordered bool) bool {
	if s.empty() {
		return false
	}
	t := s.top()
	return t.level > level || (t.level == level && t.ordered != ordered)
}

// opensFor reports whether a new frame must open for an item at the given
// level and kind. Called after closesFor has drained the stack.
func (s *frameStack) opensFor(level int, ordered bool) bool {
	return s.empty() || s.top().level < level
}

// counters holds the per-level ordered item counters used by the Markdown
// renderer. Deeper counters are discarded whenever a shallower line appears,
// so re-entering a level restarts its numbering.
type counters map[int]int

// next increments and returns the counter for a level.
func (c counters) next(level int) int {
	c[level]++
	return c[level]
}

// reset clears the counter for a level (a fresh list opened there).
func (c counters) reset(level int) {
	delete(c, level)
}

// dropDeeper clears all counters strictly below the given level.
func (c counters) dropDeeper(level int) {
	for l := range c {
		if l > level {
			delete(c, l)
		}
	}
}
