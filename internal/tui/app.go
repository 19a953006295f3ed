package tui

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmtree/internal/drag"
	"github.com/nikbrunner/bmtree/internal/edit"
	"github.com/nikbrunner/bmtree/internal/exporter"
	"github.com/nikbrunner/bmtree/internal/log"
	"github.com/nikbrunner/bmtree/internal/model"
	"github.com/nikbrunner/bmtree/internal/picker"
	"github.com/nikbrunner/bmtree/internal/search"
	"github.com/nikbrunner/bmtree/internal/tui/layout"
)

// App is the main bubbletea model for the bookmark tree.
type App struct {
	tree   *model.Tree
	filter *search.Filter
	drag   *drag.Session
	editor *edit.Controller

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode   Mode
	rows   []Row
	cursor int // selected row index
	offset int // first visible row

	searchInput textinput.Model
	form        FormState
	removal     *drag.Removal
	picker      picker.Picker
	dropZone    dropZone

	messageText string
	messageType MessageType
	notice      string

	clipboard  func(string) error
	exportPath string

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Tree          *model.Tree
	Keys          *KeyMap                 // optional, uses default if nil
	Styles        *Styles                 // optional, uses default if nil
	LayoutConfig  *layout.LayoutConfig    // optional, uses default if nil
	DebounceDelay time.Duration           // optional, search.DefaultDelay if zero
	Clipboard     func(text string) error // optional, system clipboard if nil
	ExportPath    string                  // optional, exporter.DefaultExportPath if empty
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	delay := params.DebounceDelay
	if delay <= 0 {
		delay = search.DefaultDelay
	}

	clip := params.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}

	tree := params.Tree
	if tree == nil {
		tree = model.NewTree()
	}

	filter := search.NewFilter(tree, delay)

	si := textinput.New()
	si.Placeholder = "Search title or description..."
	si.Prompt = "/ "
	si.CharLimit = layoutCfg.Input.SearchCharLimit
	si.Width = layoutCfg.Input.StandardWidth

	app := App{
		tree:         tree,
		filter:       filter,
		drag:         drag.NewSession(tree),
		editor:       edit.NewController(tree, edit.Options{Search: filter}),
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		mode:         ModeNormal,
		searchInput:  si,
		form:         NewFormState(layoutCfg),
		clipboard:    clip,
		exportPath:   params.ExportPath,
		width:        80,
		height:       24,
	}

	app.refreshRows(model.RootID)
	return app
}

// WithDimensions returns a copy of the App with the given dimensions.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	a.refreshRows(a.selectedID())
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Rows returns the currently visible rows.
func (a App) Rows() []Row {
	return a.rows
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the status message and its type.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Notice returns the blocking notice text shown in ModeNotice.
func (a App) Notice() string {
	return a.notice
}

// Form returns the add/edit form state.
func (a App) Form() FormState {
	return a.form
}

// Tree returns the tree being edited.
func (a App) Tree() *model.Tree {
	return a.tree
}

// Dragging reports whether a drag is in progress.
func (a App) Dragging() bool {
	return a.drag.Active()
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.refreshRows(a.selectedID())
		if a.mode == ModeMove {
			return a.updateMove(msg)
		}
		return a, nil

	case search.DebounceMsg:
		if a.filter.Fire(msg) {
			a.refreshRows(a.selectedID())
		}
		return a, nil

	case tea.MouseMsg:
		if a.mode != ModeNormal {
			return a, nil
		}
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	switch a.mode {
	case ModeMove:
		return a.updateMove(msg)
	case ModeSearch:
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	case ModeForm:
		var cmd tea.Cmd
		in := a.form.Focused()
		*in, cmd = in.Update(msg)
		return a, cmd
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// handleKey dispatches a key press by mode.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeSearch:
		return a.handleSearchKey(msg)
	case ModeForm:
		return a.handleFormKey(msg)
	case ModeConfirmRemove:
		return a.handleConfirmKey(msg)
	case ModeMove:
		return a.updateMove(msg)
	case ModeNotice:
		a.notice = ""
		a.mode = ModeNormal
		return a, nil
	case ModeHelp:
		if key.Matches(msg, a.keys.Help, a.keys.Quit, a.keys.Cancel) {
			a.mode = ModeNormal
		}
		return a, nil
	}

	if msg.Paste {
		return a.handlePaste(string(msg.Runes))
	}
	if a.drag.Active() {
		return a.handleDragKey(msg)
	}
	return a.handleNormalKey(msg)
}

// handleNormalKey handles keys in ModeNormal without a drag.
func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			a.setCursor(0)
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false
	a.clearMessage()

	row, hasRow := a.selectedRow()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.setCursor(a.cursor + 1)

	case key.Matches(msg, a.keys.Up):
		a.setCursor(a.cursor - 1)

	case key.Matches(msg, a.keys.Bottom):
		a.setCursor(len(a.rows) - 1)

	case key.Matches(msg, a.keys.Left):
		if !hasRow {
			break
		}
		if row.HasChildren && !row.Collapsed {
			a.setCollapsed(row.ID, true)
		} else if row.Parent != model.RootID {
			a.selectID(row.Parent)
		}

	case key.Matches(msg, a.keys.Right):
		if hasRow && row.HasChildren && row.Collapsed {
			a.setCollapsed(row.ID, false)
		}

	case key.Matches(msg, a.keys.Toggle):
		if hasRow && row.HasChildren {
			a.setCollapsed(row.ID, !row.Collapsed)
		}

	case key.Matches(msg, a.keys.Grab):
		if hasRow && a.drag.Begin(row.ID, row.ID) {
			a.setMessage("Dragging "+row.Title, MessageInfo)
		}

	case key.Matches(msg, a.keys.Add):
		a.editor.Cancel()
		return a.openForm()

	case key.Matches(msg, a.keys.Edit):
		if !hasRow {
			break
		}
		if err := a.editor.Load(row.ID); err != nil {
			return a.handleTreeError(err), nil
		}
		return a.openForm()

	case key.Matches(msg, a.keys.Delete):
		if !hasRow {
			break
		}
		removal, err := drag.NewRemoval(a.tree, row.ID)
		if err != nil {
			return a.handleTreeError(err), nil
		}
		a.removal = removal
		a.mode = ModeConfirmRemove

	case key.Matches(msg, a.keys.Move):
		if !hasRow {
			break
		}
		a.picker = picker.New(a.tree, row.ID)
		a.mode = ModeMove
		return a.updateMove(tea.WindowSizeMsg{Width: a.width, Height: a.height})

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.searchInput.SetValue(a.filter.Query())
		a.searchInput.CursorEnd()
		return a, a.searchInput.Focus()

	case key.Matches(msg, a.keys.YankURL):
		if !hasRow {
			break
		}
		a.yank(row.URL, "URL")

	case key.Matches(msg, a.keys.YankHandle):
		if hasRow {
			a.yank(a.tree.Handle(row.ID), "handle")
		}

	case key.Matches(msg, a.keys.Export):
		a.export()

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Cancel):
		if a.filter.Active() {
			a.clearSearch()
		}
	}

	return a, nil
}

// handleDragKey handles keys while a keyboard drag is active.
// Moving the cursor evaluates the row under it as a drop target.
func (a App) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, hasRow := a.selectedRow()
	source, _ := a.drag.Source()

	switch {
	case key.Matches(msg, a.keys.Down):
		a.setCursor(a.cursor + 1)
		a.hoverCursor()

	case key.Matches(msg, a.keys.Up):
		a.setCursor(a.cursor - 1)
		a.hoverCursor()

	case key.Matches(msg, a.keys.Toggle):
		if !hasRow || row.ID == source {
			a.drag.Cancel()
			a.clearMessage()
			break
		}
		return a.finishDrop(a.drag.Drop(row.ID, model.Last), source), nil

	case key.Matches(msg, a.keys.DropBefore):
		if !hasRow || row.ID == source {
			a.drag.Cancel()
			a.clearMessage()
			break
		}
		return a.finishDrop(a.drag.DropBefore(row.ID), source), nil

	case key.Matches(msg, a.keys.Delete):
		return a.dropOnTrash()

	case key.Matches(msg, a.keys.Edit):
		return a.dropOnForm()

	case key.Matches(msg, a.keys.Cancel):
		a.drag.Cancel()
		a.clearMessage()

	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	}

	return a, nil
}

// hoverCursor evaluates the selected row as a drop target.
func (a *App) hoverCursor() {
	row, ok := a.selectedRow()
	if !ok {
		a.drag.Leave()
		return
	}
	a.drag.Over(row.ID, model.Last)
}

// handleSearchKey handles keys while the search input is focused.
func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.filter.Set(a.searchInput.Value())
		a.searchInput.Blur()
		a.mode = ModeNormal
		a.refreshRows(a.selectedID())
		return a, nil

	case tea.KeyEsc:
		a.clearSearch()
		a.mode = ModeNormal
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if value := a.searchInput.Value(); value != before {
		return a, tea.Batch(cmd, a.filter.Type(value))
	}
	return a, cmd
}

// clearSearch drops the query and restores the full tree.
func (a *App) clearSearch() {
	a.filter.Clear()
	a.searchInput.Reset()
	a.searchInput.Blur()
	a.refreshRows(a.selectedID())
}

// openForm shows the form filled from the controller's buffer.
func (a App) openForm() (tea.Model, tea.Cmd) {
	a.form.Load(a.editor.Buffer())
	a.mode = ModeForm
	return a, textinput.Blink
}

// handleFormKey handles keys in the add/edit form.
func (a App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Paste {
		a.editor.SetBuffer(a.form.Fields())
		if err := a.drag.DropText(drag.Payload{Text: string(msg.Runes)}, a.editor); err == nil {
			focus := a.form.Focus
			a.form.Load(a.editor.Buffer())
			a.form.setFocus(focus)
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.editor.Cancel()
		a.form.Reset()
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		return a.submitForm(), nil

	case key.Matches(msg, a.keys.NextField):
		a.form.FocusNext()
		return a, nil

	case key.Matches(msg, a.keys.PrevField):
		a.form.FocusPrev()
		return a, nil
	}

	var cmd tea.Cmd
	in := a.form.Focused()
	*in, cmd = in.Update(msg)
	return a, cmd
}

// submitForm creates or updates the node and returns to the tree.
// A submit always clears the search.
func (a App) submitForm() App {
	mode := a.editor.Mode()
	id, err := a.editor.Submit(a.form.Fields())
	a.form.Reset()
	a.searchInput.Reset()
	a.mode = ModeNormal
	if err != nil {
		a.refreshRows(a.selectedID())
		return a.handleTreeError(err)
	}

	a.refreshRows(id)
	if mode == edit.ModeEdit {
		a.setMessage("Updated", MessageSuccess)
	} else {
		a.setMessage("Added", MessageSuccess)
	}
	return a
}

// handleConfirmKey resolves a pending removal.
func (a App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		removal := a.removal
		a.removal = nil
		a.mode = ModeNormal
		if removal == nil {
			return a, nil
		}
		if err := removal.Confirm(); err != nil {
			return a.handleTreeError(err), nil
		}
		a.filter.Refresh()
		a.refreshRows(a.selectedID())
		a.setMessage("Deleted "+removal.Title(), MessageSuccess)

	case key.Matches(msg, a.keys.Deny):
		a.removal = nil
		a.mode = ModeNormal
	}
	return a, nil
}

// updateMove forwards msg to the folder picker and applies its choice.
func (a App) updateMove(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := a.picker.Update(msg)
	a.picker = updated.(picker.Picker)
	if !a.picker.Done() {
		return a, cmd
	}

	a.mode = ModeNormal
	target, ok := a.picker.Selected()
	if !ok {
		return a, nil
	}
	source := a.picker.Source()
	if err := a.tree.Move(source, target, model.Last); err != nil {
		return a.handleTreeError(err), nil
	}
	a.filter.Refresh()
	a.refreshRows(source)
	a.setMessage("Moved", MessageSuccess)
	return a, nil
}

// handlePaste treats pasted text as a drop. A node handle of this tree
// starts a drag of that node; anything else is dropped onto the form.
func (a App) handlePaste(text string) (tea.Model, tea.Cmd) {
	if id, err := a.tree.ParseHandle(text); err == nil {
		if ok, _ := a.drag.BeginPayload(drag.Payload{Handle: text}, id); ok {
			a.selectID(id)
			a.setMessage("Dragging pasted node", MessageInfo)
		}
		return a, nil
	}

	a.editor.Cancel()
	err := a.drag.DropText(drag.Payload{Text: text}, a.editor)
	if errors.Is(err, model.ErrMalformedPayload) {
		return a, nil
	}
	return a.openForm()
}

// dropOnTrash ends the drag with a removal request.
func (a App) dropOnTrash() (tea.Model, tea.Cmd) {
	a.dropZone = dropNone
	removal, err := a.drag.DropOnTrash()
	if err != nil {
		return a.handleTreeError(err), nil
	}
	a.removal = removal
	a.mode = ModeConfirmRemove
	return a, nil
}

// dropOnForm ends the drag by loading the source into the form.
func (a App) dropOnForm() (tea.Model, tea.Cmd) {
	a.dropZone = dropNone
	if err := a.drag.DropOnForm(a.editor); err != nil {
		return a.handleTreeError(err), nil
	}
	return a.openForm()
}

// finishDrop re-projects the tree after a drop attempt.
func (a App) finishDrop(err error, source model.NodeID) App {
	a.dropZone = dropNone
	if err != nil {
		return a.handleTreeError(err)
	}
	a.filter.Refresh()
	a.refreshRows(source)
	a.setMessage("Moved", MessageSuccess)
	return a
}

// handleTreeError surfaces a failed tree operation. Rejected moves and
// vanished nodes block with a notice; malformed payloads are ignored.
func (a App) handleTreeError(err error) App {
	switch {
	case errors.Is(err, model.ErrInvalidMove):
		a.notice = "Move not allowed"
		a.mode = ModeNotice
	case errors.Is(err, model.ErrNotFound):
		a.notice = "Bookmark no longer exists"
		a.mode = ModeNotice
	case errors.Is(err, model.ErrMalformedPayload), errors.Is(err, drag.ErrNotDragging):
		log.Debug(log.CatUI, "Ignored drop", "error", err)
	default:
		log.ErrorErr(log.CatUI, "Tree operation failed", err)
		a.setMessage(err.Error(), MessageError)
	}
	a.refreshRows(a.selectedID())
	return a
}

// yank copies text to the clipboard.
func (a *App) yank(text, what string) {
	if text == "" {
		a.setMessage("Folders have no URL", MessageWarning)
		return
	}
	if err := a.clipboard(text); err != nil {
		log.ErrorErr(log.CatUI, "Clipboard write failed", err)
		a.setMessage("Clipboard unavailable", MessageError)
		return
	}
	a.setMessage("Copied "+what, MessageSuccess)
}

// export writes the tree to the export path.
func (a *App) export() {
	path := a.exportPath
	if path == "" {
		p, err := exporter.DefaultExportPath()
		if err != nil {
			a.setMessage(err.Error(), MessageError)
			return
		}
		path = p
	}
	if err := exporter.WriteFile(a.tree, path); err != nil {
		log.ErrorErr(log.CatUI, "Export failed", err, "path", path)
		a.setMessage("Export failed: "+err.Error(), MessageError)
		return
	}
	a.setMessage("Exported to "+path, MessageSuccess)
}

// setCollapsed folds or unfolds id and re-projects.
func (a *App) setCollapsed(id model.NodeID, collapsed bool) {
	if err := a.tree.SetCollapsed(id, collapsed); err != nil {
		log.ErrorErr(log.CatUI, "Collapse failed", err, "id", id)
		return
	}
	a.refreshRows(id)
}

// refreshRows rebuilds the rows from the tree and keeps id selected when it
// is still visible.
func (a *App) refreshRows(id model.NodeID) {
	a.rows = Project(a.tree, a.filter.Result())
	for i, r := range a.rows {
		if r.ID == id {
			a.cursor = i
			a.scroll()
			return
		}
	}
	a.setCursor(a.cursor)
}

// setCursor clamps i into range and scrolls it into view.
func (a *App) setCursor(i int) {
	if i >= len(a.rows) {
		i = len(a.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	a.cursor = i
	a.scroll()
}

func (a *App) scroll() {
	a.offset = layout.ScrollOffset(a.offset, a.cursor, len(a.rows), a.listHeight())
}

// selectID moves the cursor to id if it is visible.
func (a *App) selectID(id model.NodeID) {
	for i, r := range a.rows {
		if r.ID == id {
			a.setCursor(i)
			return
		}
	}
}

func (a App) selectedRow() (Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return Row{}, false
	}
	return a.rows[a.cursor], true
}

func (a App) selectedID() model.NodeID {
	if row, ok := a.selectedRow(); ok {
		return row.ID
	}
	return model.RootID
}

func (a App) listHeight() int {
	return layout.CalculateListHeight(a.height, a.layoutConfig.List)
}

func (a *App) setMessage(text string, t MessageType) {
	a.messageText = text
	a.messageType = t
}

func (a *App) clearMessage() {
	a.messageText = ""
}
