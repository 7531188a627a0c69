package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spriteline/spriteline-cli/pkg/assets"
	"github.com/spriteline/spriteline-cli/pkg/files"
	"github.com/spriteline/spriteline-cli/pkg/models"
	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

const (
	tickInterval = 33 * time.Millisecond

	// Vertical layout of the editor, in terminal rows. Must match the
	// order View emits: header, ruler labels, ticks, frame band, marker.
	rulerLabelRow = 1
	rulerTickRow  = 2
	framesTopRow  = 3
	framesRows    = 3
	markerRow     = framesTopRow + framesRows

	// Horizontal inset of the timeline band
	timelineOriginX = 1

	previewRows = 6
)

type tickMsg time.Time

type assetsChangedMsg struct{}

type EditorModel struct {
	clipPath string
	store    *files.ClipStore
	session  *timeline.Session
	loop     bool

	lib     *assets.Library
	cache   *assets.RenderCache
	watcher *assets.Watcher

	settings *models.Settings

	// Asset panel state
	assetFocus  bool
	assetCursor int

	showHelp bool

	width  int
	height int

	lastTick time.Time

	err error
}

func NewEditorModel(clipPath string) (*EditorModel, error) {
	store, err := files.OpenClipStore(clipPath)
	if err != nil {
		return nil, err
	}

	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	seq := timeline.SequenceFromTrack(store.Track())
	// A persisted single placeholder frame means the clip is empty
	if seq.IsEffectivelyEmpty() {
		seq = timeline.NewSequence(seq.SampleRate)
	}

	defaults := timeline.FrameDefaults{
		Length:  settings.Defaults.FrameLength,
		Samples: settings.Defaults.FrameSamples,
	}
	session := timeline.NewSession(seq, defaults, 80)
	if settings.Playback.Speed > 0 {
		session.Play.Speed = settings.Playback.Speed
	}

	// A freshly created clip has no meaningful loop flag of its own yet,
	// so it starts from the configured default
	loop := store.Clip().Track.Loop
	if seq.Len() == 0 {
		loop = settings.Playback.Loop
	}
	session.Play.Loop = loop

	lib := assets.NewLibrary(files.AssetsPath())
	if err := lib.Scan(); err != nil {
		return nil, err
	}

	previewCols := settings.UI.PreviewWidth
	if previewCols < 8 {
		previewCols = 8
	}
	cache := assets.NewRenderCache(func(a *assets.Asset) (string, error) {
		return assets.RenderPreview(a.Path, previewCols, previewRows)
	})

	// A missing asset directory just disables live reload
	watcher, _ := assets.NewWatcher(files.AssetsPath())

	return &EditorModel{
		clipPath: clipPath,
		store:    store,
		session:  session,
		loop:     loop,
		lib:      lib,
		cache:    cache,
		watcher:  watcher,
		settings: settings,
	}, nil
}

func (m *EditorModel) Init() tea.Cmd {
	return m.watchAssets()
}

// Close releases the editor's file watcher.
func (m *EditorModel) Close() {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
}

func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.session.View.SetWidth(m.timelineWidth(), m.session.Seq.TotalLength())
}

func (m *EditorModel) timelineWidth() float64 {
	w := m.width - 2*timelineOriginX
	if w < 1 {
		w = 1
	}
	return float64(w)
}

func (m *EditorModel) watchAssets() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return assetsChangedMsg{}
	}
}

func (m *EditorModel) scheduleTick() tea.Cmd {
	m.lastTick = time.Now()
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// commit persists the current sequence as a new undo step.
func (m *EditorModel) commit() tea.Cmd {
	if err := m.store.Commit(m.session.Seq.ToTrack(m.loop)); err != nil {
		return statusCmd("Save failed: " + err.Error())
	}
	return nil
}

func (m *EditorModel) applyEffects(eff timeline.Effects) tea.Cmd {
	if eff.Commit {
		return m.commit()
	}
	return nil
}

// reloadFromStore rebuilds the session sequence after an undo or redo.
func (m *EditorModel) reloadFromStore() {
	track := m.store.Track()
	m.loop = track.Loop
	m.session.SetSequence(timeline.SequenceFromTrack(track), false)
	m.session.Play.Loop = track.Loop
}

func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(msg)
	}
}
