package files

import "github.com/spriteline/spriteline-cli/pkg/models"

// maxUndoDepth bounds the per-clip history kept in memory.
const maxUndoDepth = 100

// ClipStore is the commit boundary between the in-memory sequence and the
// persisted clip file. Every commit snapshots the track it replaces, so
// the editor can undo and redo; history lives only for the session.
type ClipStore struct {
	clip *models.Clip
	undo []models.KeyframeTrack
	redo []models.KeyframeTrack

	// OnHistory, when set, is invoked after an undo or redo with the
	// restored track. The editor rebuilds its sequence from it without
	// resetting playback or view state.
	OnHistory func(models.KeyframeTrack)
}

// OpenClipStore loads a clip from the project and wraps it in a store.
func OpenClipStore(path string) (*ClipStore, error) {
	clip, err := ReadClip(path)
	if err != nil {
		return nil, err
	}
	return NewClipStore(clip), nil
}

// NewClipStore wraps an already-loaded clip.
func NewClipStore(clip *models.Clip) *ClipStore {
	return &ClipStore{clip: clip}
}

// Clip returns the stored clip.
func (st *ClipStore) Clip() *models.Clip {
	return st.clip
}

// Track returns the current persisted track.
func (st *ClipStore) Track() models.KeyframeTrack {
	return copyTrack(st.clip.Track)
}

// Commit records an undo snapshot of the outgoing track, installs the new
// one and writes the clip back to disk. A commit clears the redo history.
func (st *ClipStore) Commit(track models.KeyframeTrack) error {
	st.undo = append(st.undo, copyTrack(st.clip.Track))
	if len(st.undo) > maxUndoDepth {
		st.undo = st.undo[len(st.undo)-maxUndoDepth:]
	}
	st.redo = st.redo[:0]

	st.clip.Track = copyTrack(track)
	return WriteClip(st.clip)
}

// CanUndo reports whether an undo snapshot exists.
func (st *ClipStore) CanUndo() bool {
	return len(st.undo) > 0
}

// CanRedo reports whether a redo snapshot exists.
func (st *ClipStore) CanRedo() bool {
	return len(st.redo) > 0
}

// Undo restores the previous track, persisting it and notifying the host.
func (st *ClipStore) Undo() (bool, error) {
	if len(st.undo) == 0 {
		return false, nil
	}
	st.redo = append(st.redo, copyTrack(st.clip.Track))
	st.clip.Track = st.undo[len(st.undo)-1]
	st.undo = st.undo[:len(st.undo)-1]

	if err := WriteClip(st.clip); err != nil {
		return false, err
	}
	if st.OnHistory != nil {
		st.OnHistory(copyTrack(st.clip.Track))
	}
	return true, nil
}

// Redo reapplies the most recently undone track.
func (st *ClipStore) Redo() (bool, error) {
	if len(st.redo) == 0 {
		return false, nil
	}
	st.undo = append(st.undo, copyTrack(st.clip.Track))
	st.clip.Track = st.redo[len(st.redo)-1]
	st.redo = st.redo[:len(st.redo)-1]

	if err := WriteClip(st.clip); err != nil {
		return false, err
	}
	if st.OnHistory != nil {
		st.OnHistory(copyTrack(st.clip.Track))
	}
	return true, nil
}

func copyTrack(track models.KeyframeTrack) models.KeyframeTrack {
	out := track
	out.Keys = append([]models.Keyframe(nil), track.Keys...)
	return out
}
