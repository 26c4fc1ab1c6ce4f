package ctexture

// Change notifications.
const (
	// EventModified is announced after any property or table change.
	EventModified = "modified"

	// EventPatchesModified is announced after a texture's patch list changes.
	EventPatchesModified = "patches_modified"
)

// Listener receives change notifications.
type Listener interface {
	OnAnnouncement(source any, event string)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(source any, event string)

// OnAnnouncement calls f(source, event).
func (f ListenerFunc) OnAnnouncement(source any, event string) {
	f(source, event)
}

// Announcer delivers change notifications to listeners synchronously.
// The zero value is ready to use.
type Announcer struct {
	listeners []Listener
	muted     int
}

// AddListener registers l.
func (a *Announcer) AddListener(l Listener) {
	a.listeners = append(a.listeners, l)
}

// Mute suspends delivery until the returned function is called. Mutes nest;
// calling the restore function more than once has no further effect.
//
//	defer t.Mute()()
func (a *Announcer) Mute() (restore func()) {
	a.muted++
	done := false
	return func() {
		if !done {
			done = true
			a.muted--
		}
	}
}

// Muted reports whether delivery is suspended.
func (a *Announcer) Muted() bool {
	return a.muted > 0
}

func (a *Announcer) announce(source any, event string) {
	if a.muted > 0 {
		return
	}
	for _, l := range a.listeners {
		l.OnAnnouncement(source, event)
	}
}
