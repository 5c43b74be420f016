// Package app wires the dashboard together: sidebar, view tabs, table,
// dialogs, the query controller per collection, and the summary ticker.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/datadeck/internal/api"
	"github.com/rebeliceyang/datadeck/internal/columns"
	"github.com/rebeliceyang/datadeck/internal/config"
	"github.com/rebeliceyang/datadeck/internal/export"
	"github.com/rebeliceyang/datadeck/internal/filter"
	"github.com/rebeliceyang/datadeck/internal/library"
	"github.com/rebeliceyang/datadeck/internal/models"
	"github.com/rebeliceyang/datadeck/internal/prefs"
	"github.com/rebeliceyang/datadeck/internal/present"
	"github.com/rebeliceyang/datadeck/internal/presets"
	"github.com/rebeliceyang/datadeck/internal/query"
	"github.com/rebeliceyang/datadeck/internal/timeline"
	"github.com/rebeliceyang/datadeck/internal/ui/components"
	"github.com/rebeliceyang/datadeck/internal/ui/help"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// focusedPanel marks which half of the split layout owns navigation keys.
type focusedPanel int

const (
	leftPanel focusedPanel = iota
	rightPanel
)

// overlay is the modal currently covering the main view.
type overlay int

const (
	overlayNone overlay = iota
	overlaySearch
	overlayFilter
	overlayColumns
	overlayPresets
	overlayHelp
	overlayError
)

// App is the main application model
type App struct {
	config    *config.Config
	theme     theme.Theme
	client    *api.Client
	prefs     prefs.Prefs
	prefsPath string
	presets   *presets.Manager

	width   int
	height  int
	focused focusedPanel
	overlay overlay

	sidebar       *components.Sidebar
	viewTabs      *components.ViewTabs
	tableView     *components.TableView
	searchInput   *components.SearchInput
	filterBuilder *components.FilterBuilder
	columnManager *components.ColumnManager
	presetsDialog *components.PresetsDialog
	errorOverlay  *components.ErrorOverlay
	detailPane    *components.DetailPane
	timelineBar   *components.TimelineBar
	leftPane      components.Panel
	rightPane     components.Panel

	collection library.Collection
	controller *query.Controller
	columns    *columns.Manager

	summary    map[string]any
	statusLine string
}

// ListResultMsg carries a finished list fetch back to the controller.
type ListResultMsg struct {
	Collection string
	Result     query.Result
}

// SampleLoadedMsg carries the record sampled for column discovery.
type SampleLoadedMsg struct {
	Collection string
	Sample     models.Record
	Err        error
}

// SummaryMsg carries the dashboard summary refresh.
type SummaryMsg struct {
	Data map[string]any
	Err  error
}

type summaryTickMsg struct{}

// ExportDoneMsg reports an export outcome for the status line.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// New creates the app model. The client may fail fetches later; a nil prefs
// file or presets dir degrades to defaults.
func New(cfg *config.Config, client *api.Client, configDir string) *App {
	prefsPath := filepath.Join(configDir, "prefs.toml")
	p := prefs.Load(prefsPath)

	// The prefs file overrides the config theme once the user picked one.
	themeName := cfg.UI.Theme
	if p.Theme != "" && p.Theme != "default" {
		themeName = p.Theme
	}
	th := theme.GetTheme(themeName)

	pm, err := presets.NewManager(configDir)
	if err != nil {
		// A corrupt presets file shouldn't block the dashboard.
		pm, _ = presets.NewManager(filepath.Join(configDir, "presets-recovery"))
	}

	a := &App{
		config:        cfg,
		theme:         th,
		client:        client,
		prefs:         p,
		prefsPath:     prefsPath,
		presets:       pm,
		sidebar:       components.NewSidebar(library.Collections(), th),
		viewTabs:      components.NewViewTabs(th),
		tableView:     components.NewTableView(th),
		searchInput:   components.NewSearchInput(th),
		filterBuilder: components.NewFilterBuilder(th),
		columnManager: components.NewColumnManager(th),
		presetsDialog: components.NewPresetsDialog(th),
		errorOverlay:  components.NewErrorOverlay(th),
		detailPane:    components.NewDetailPane(th),
		timelineBar:   components.NewTimelineBar(th),
		focused:       rightPanel,
		leftPane:      components.Panel{Title: "Collections", Theme: th},
		rightPane:     components.Panel{Theme: th},
	}
	if c, ok := library.Find(cfg.General.DefaultCollection); ok {
		a.sidebar.Select(c.ID)
	}
	a.updatePanelStyles()
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if c, ok := a.sidebar.Active(); ok {
		cmds = append(cmds, a.openCollection(c))
	}
	cmds = append(cmds, a.fetchSummary(), a.scheduleSummaryTick())
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updatePanelDimensions()
		return a, nil

	case ListResultMsg:
		return a, a.handleListResult(msg)

	case SampleLoadedMsg:
		a.handleSampleLoaded(msg)
		return a, nil

	case SummaryMsg:
		if msg.Err == nil {
			a.summary = msg.Data
		}
		// Summary failures stay silent; the ticker retries.
		return a, nil

	case summaryTickMsg:
		return a, tea.Batch(a.fetchSummary(), a.scheduleSummaryTick())

	case ExportDoneMsg:
		if msg.Err != nil {
			a.showError("Export Failed", msg.Err.Error())
		} else {
			a.statusLine = "exported " + msg.Path
		}
		return a, nil

	case components.CollectionSelectedMsg:
		return a, a.openCollection(msg.Collection)

	case components.SearchSubmittedMsg:
		a.overlay = overlayNone
		a.controller.SetSearch(msg.Query)
		return a, a.planFetch()

	case components.CloseSearchMsg,
		components.CloseFilterBuilderMsg,
		components.CloseColumnManagerMsg,
		components.ClosePresetsMsg:
		a.overlay = overlayNone
		return a, nil

	case components.ApplyFiltersMsg:
		a.overlay = overlayNone
		a.controller.SetFilters(msg.Groups)
		return a, a.planFetch()

	case components.SaveColumnsMsg:
		a.overlay = overlayNone
		a.saveColumnLayout(msg.VisibleKeys)
		a.refreshTable()
		return a, nil

	case components.ApplyPresetMsg:
		a.overlay = overlayNone
		_ = a.presets.RecordUsage(msg.Preset.ID)
		a.controller.SetSearch(msg.Preset.Search)
		a.controller.SetFilters(msg.Preset.Groups)
		a.filterBuilder.SetGroups(msg.Preset.Groups)
		return a, a.planFetch()

	case components.SavePresetMsg:
		st := a.controller.State()
		if _, err := a.presets.Add(msg.Name, "", a.collection.ID, st.Search, st.Filters); err != nil {
			a.presetsDialog.Status = err.Error()
		} else {
			a.presetsDialog.SetPresets(a.presets.ForCollection(a.collection.ID))
			a.presetsDialog.Status = "Saved"
		}
		return a, nil

	case components.FilterPresetsMsg:
		a.presetsDialog.SetPresets(a.presets.Search(a.collection.ID, msg.Query))
		return a, nil

	case components.DeletePresetMsg:
		if err := a.presets.Delete(msg.ID); err != nil {
			a.presetsDialog.Status = err.Error()
		} else {
			a.presetsDialog.SetPresets(a.presets.ForCollection(a.collection.ID))
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Error overlay eats everything but dismissal and quit.
	if a.overlay == overlayError {
		switch msg.String() {
		case "esc", "enter":
			a.overlay = overlayNone
		case "q", "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}

	switch a.overlay {
	case overlaySearch:
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	case overlayFilter:
		var cmd tea.Cmd
		a.filterBuilder, cmd = a.filterBuilder.Update(msg)
		return a, cmd
	case overlayColumns:
		var cmd tea.Cmd
		a.columnManager, cmd = a.columnManager.Update(msg)
		return a, cmd
	case overlayPresets:
		var cmd tea.Cmd
		a.presetsDialog, cmd = a.presetsDialog.Update(msg)
		return a, cmd
	case overlayHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.overlay = overlayNone
		case "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "?":
		a.overlay = overlayHelp
		return a, nil
	case "tab":
		if a.focused == leftPanel {
			a.focused = rightPanel
		} else {
			a.focused = leftPanel
		}
		a.updatePanelStyles()
		return a, nil
	case "r", "f5":
		if req := a.controller.Refresh(); req != nil {
			a.refreshTable()
			return a, a.fetchCmd(req)
		}
		return a, nil
	}

	if a.focused == leftPanel {
		var cmd tea.Cmd
		a.sidebar, cmd = a.sidebar.Update(msg)
		return a, cmd
	}
	return a.handleTableKey(msg)
}

func (a *App) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.tableView.MoveSelection(-1)
		a.syncDetail()
	case "down", "j":
		a.tableView.MoveSelection(1)
		a.syncDetail()
	case "ctrl+u":
		a.tableView.PageUp()
		a.syncDetail()
	case "ctrl+d":
		a.tableView.PageDown()
		a.syncDetail()

	case "left", "h":
		st := a.controller.State()
		if st.Page > 1 {
			a.controller.SetPage(st.Page - 1)
			return a, a.planFetch()
		}
	case "right", "l":
		st := a.controller.State()
		if st.Page < a.controller.TotalPages() {
			a.controller.SetPage(st.Page + 1)
			return a, a.planFetch()
		}

	case "[":
		a.viewTabs.Prev()
		a.controller.SetView(a.viewTabs.Active())
		return a, a.planFetch()
	case "]":
		a.viewTabs.Next()
		a.controller.SetView(a.viewTabs.Active())
		return a, a.planFetch()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx, _ := strconv.Atoi(msg.String())
		if idx <= a.viewTabs.Count() {
			a.viewTabs.Select(idx - 1)
			a.controller.SetView(a.viewTabs.Active())
			return a, a.planFetch()
		}

	case "/":
		a.overlay = overlaySearch
		a.searchInput.SetQuery(a.controller.State().Search)
		return a, nil
	case "f":
		a.overlay = overlayFilter
		a.filterBuilder.SetColumns(a.columns.Catalog())
		a.filterBuilder.SetGroups(a.controller.State().Filters)
		return a, nil
	case "ctrl+r":
		a.controller.SetSearch("")
		a.controller.SetFilters(nil)
		a.filterBuilder.SetGroups(nil)
		return a, a.planFetch()
	case "C":
		a.overlay = overlayColumns
		a.columnManager.SetManager(a.columns)
		return a, nil
	case "p":
		a.overlay = overlayPresets
		a.presetsDialog.Reset()
		a.presetsDialog.SetPresets(a.presets.ForCollection(a.collection.ID))
		return a, nil

	case "s":
		a.cycleSort()
		return a, a.planFetch()
	case "S":
		st := a.controller.State()
		if st.SortBy != query.SortNone {
			dir := "asc"
			if st.SortDir == "asc" {
				dir = "desc"
			}
			a.controller.SetSort(st.SortBy, dir)
			return a, a.planFetch()
		}
	case "G":
		a.cycleGroupBy()
		a.refreshTable()
		return a, nil

	case "t":
		if a.collection.Timeline {
			a.controller.SetWindow(nextTimelineMode(a.controller.State().Window))
			return a, a.planFetch()
		}
	case "T":
		if a.controller.State().Window.Active() {
			a.controller.SetWindow(timeline.Window{})
			return a, a.planFetch()
		}
	case "{":
		if w := a.controller.State().Window; w.Active() {
			a.controller.SetWindow(w.Prev())
			return a, a.planFetch()
		}
	case "}":
		if w := a.controller.State().Window; w.Active() {
			a.controller.SetWindow(w.Next())
			return a, a.planFetch()
		}

	case "e", "E":
		if a.tableView.RowCount() == 0 {
			a.statusLine = "nothing to export"
			return a, nil
		}
		if msg.String() == "E" {
			return a, a.exportCmd("json")
		}
		return a, a.exportCmd("csv")

	case "v":
		a.detailPane.Visible = !a.detailPane.Visible
		a.syncDetail()
		a.updatePanelDimensions()
	case "y":
		if err := a.detailPane.CopyToClipboard(); err != nil {
			a.showError("Copy Failed", err.Error())
		} else if a.tableView.SelectedRecord() != nil {
			a.statusLine = "record copied"
		}
	case "ctrl+e":
		a.detailPane.Scroll(1)
	case "ctrl+y":
		a.detailPane.Scroll(-1)
	}
	return a, nil
}

// nextTimelineMode steps off→day→week→month→year→day…, anchored at today
// when turning on.
func nextTimelineMode(w timeline.Window) timeline.Window {
	if !w.Active() {
		return timeline.Window{Mode: timeline.ModeDay, Anchor: time.Now()}
	}
	switch w.Mode {
	case timeline.ModeDay:
		w.Mode = timeline.ModeWeek
	case timeline.ModeWeek:
		w.Mode = timeline.ModeMonth
	case timeline.ModeMonth:
		w.Mode = timeline.ModeYear
	default:
		w.Mode = timeline.ModeDay
	}
	return w
}

// cycleSort advances the sort through the sortable visible columns, ending
// back at none.
func (a *App) cycleSort() {
	var sortable []string
	for _, col := range a.columns.Visible() {
		if col.Sortable {
			sortable = append(sortable, col.Key)
		}
	}
	if len(sortable) == 0 {
		return
	}
	st := a.controller.State()
	next := sortable[0]
	if st.SortBy != query.SortNone {
		for i, key := range sortable {
			if key == st.SortBy {
				if i == len(sortable)-1 {
					next = query.SortNone
				} else {
					next = sortable[i+1]
				}
				break
			}
		}
	}
	a.controller.SetSort(next, "asc")
}

// cycleGroupBy advances grouping through the visible columns, ending at none.
func (a *App) cycleGroupBy() {
	visible := a.columns.Visible()
	if len(visible) == 0 {
		return
	}
	st := a.controller.State()
	next := visible[0].Key
	if st.GroupBy != query.GroupNone {
		next = query.GroupNone
		for i, col := range visible {
			if col.Key == st.GroupBy && i < len(visible)-1 {
				next = visible[i+1].Key
				break
			}
		}
	}
	a.controller.SetGroupBy(next, st.GroupDir)
}

// openCollection switches the dashboard to a collection: fresh controller,
// saved or default column layout, async sample for discovery.
func (a *App) openCollection(c library.Collection) tea.Cmd {
	a.collection = c
	a.viewTabs.SetViews(c.Views)

	visible := c.DefaultVisible
	if layout, ok := a.prefs.Columns[c.ID]; ok && len(layout.VisibleKeys) > 0 {
		visible = layout.VisibleKeys
	}
	a.columns = columns.NewManager(c.Columns, nil, visible)

	a.controller = query.NewController(c.Endpoint, a.viewTabs.Active(), a.config.General.DefaultLimit)
	a.filterBuilder.SetGroups(nil)
	a.focused = rightPanel
	a.updatePanelStyles()
	a.refreshTable()

	return tea.Batch(a.planFetch(), a.sampleCmd(c))
}

// planFetch turns the controller's next planned request into a command.
func (a *App) planFetch() tea.Cmd {
	req := a.controller.Plan()
	a.refreshTable()
	if req == nil {
		return nil
	}
	return a.fetchCmd(req)
}

func (a *App) fetchCmd(req *query.Request) tea.Cmd {
	client := a.client
	collectionID := a.collection.ID
	r := *req
	return func() tea.Msg {
		page, err := client.FetchList(context.Background(), r.Endpoint, r.Params)
		return ListResultMsg{
			Collection: collectionID,
			Result:     query.Result{Seq: r.Seq, Key: r.Key, Page: page, Err: err},
		}
	}
}

func (a *App) sampleCmd(c library.Collection) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		sample, err := client.SampleRecord(context.Background(), c.Endpoint)
		return SampleLoadedMsg{Collection: c.ID, Sample: sample, Err: err}
	}
}

func (a *App) handleListResult(msg ListResultMsg) tea.Cmd {
	if msg.Collection != a.collection.ID {
		// Response for a collection the user already left.
		return nil
	}
	a.controller.Apply(msg.Result)
	if a.controller.Phase() == query.PhaseError {
		a.showError("Fetch Failed", a.controller.ErrText())
	}
	a.refreshTable()
	a.syncDetail()
	// State may have moved on while the fetch ran.
	return a.planFetch()
}

func (a *App) handleSampleLoaded(msg SampleLoadedMsg) {
	if msg.Collection != a.collection.ID || msg.Err != nil || msg.Sample == nil {
		// Discovery is best-effort; the static catalog still works.
		return
	}
	a.columns = columns.NewManager(a.collection.Columns, msg.Sample, a.columns.VisibleKeys())
	a.refreshTable()
}

// saveColumnLayout persists the visible keys for the open collection.
func (a *App) saveColumnLayout(keys []string) {
	if a.prefs.Columns == nil {
		a.prefs.Columns = map[string]prefs.ColumnLayout{}
	}
	a.prefs.Columns[a.collection.ID] = prefs.ColumnLayout{VisibleKeys: keys}
	if err := prefs.Save(a.prefsPath, a.prefs); err != nil {
		a.showError("Save Failed", err.Error())
	}
}

// refreshTable re-derives the table rows from controller state.
func (a *App) refreshTable() {
	if a.controller == nil || a.columns == nil {
		return
	}
	st := a.controller.State()
	records := a.controller.Records()
	if a.controller.Phase() == query.PhaseRefetching && st.HasRules() {
		// Pre-filter the stale page locally so newly applied rules show an
		// effect before the server page arrives.
		records = filter.Evaluate(records, st.Filters)
	}
	groups := present.GroupPage(records, st.GroupBy, st.GroupDir)
	a.tableView.SortBy = st.SortBy
	a.tableView.SortDir = st.SortDir
	a.tableView.Stale = a.controller.Phase() == query.PhaseRefetching
	a.tableView.SetData(a.columns.Visible(), groups, st.Page, a.controller.TotalPages(), a.controller.TotalItems())
}

// syncDetail mirrors the table cursor into the detail pane and surfaces the
// selected record's identity in the status line.
func (a *App) syncDetail() {
	rec := a.tableView.SelectedRecord()
	if a.detailPane.Visible || rec != nil {
		a.detailPane.SetRecord(rec, a.collection.ID)
	}
	if rec != nil {
		if id := rec.DisplayString(a.collection.IDKey); id != "" {
			a.statusLine = "record " + id
		}
	}
}

func (a *App) exportCmd(format string) tea.Cmd {
	cols := a.columns.Visible()
	records := a.controller.Records()
	dir := a.config.General.ExportDir
	if dir == "" {
		dir = "."
	}
	name := fmt.Sprintf("%s-%s.%s", a.collection.ID, time.Now().Format("20060102-150405"), format)
	path := filepath.Join(dir, name)
	return func() tea.Msg {
		var err error
		if format == "json" {
			err = export.ToJSONFile(path, cols, records)
		} else {
			err = export.ToCSVFile(path, cols, records)
		}
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// fetchSummary refreshes the dashboard summary counts.
func (a *App) fetchSummary() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		data, err := client.FetchSummary(context.Background(), library.SummaryEndpoint)
		return SummaryMsg{Data: data, Err: err}
	}
}

func (a *App) scheduleSummaryTick() tea.Cmd {
	seconds := a.config.UI.TickerSeconds
	if seconds <= 0 {
		seconds = 5
	}
	return tea.Tick(time.Duration(seconds)*time.Second, func(time.Time) tea.Msg {
		return summaryTickMsg{}
	})
}

// View implements tea.Model
func (a *App) View() string {
	if a.overlay == overlayError {
		return lipgloss.Place(
			a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}
	if a.overlay == overlayHelp {
		return help.Render(a.width, a.height, lipgloss.NewStyle())
	}

	base := a.renderNormalView()

	switch a.overlay {
	case overlaySearch:
		a.searchInput.Width = min(a.width-8, 70)
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.searchInput.View())
	case overlayFilter:
		a.filterBuilder.Width = min(a.width-8, 90)
		a.filterBuilder.Height = min(a.height-4, 30)
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.filterBuilder.View())
	case overlayColumns:
		a.columnManager.Width = min(a.width-8, 64)
		a.columnManager.Height = min(a.height-4, 28)
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.columnManager.View())
	case overlayPresets:
		a.presetsDialog.Width = min(a.width-8, 64)
		a.presetsDialog.Height = min(a.height-4, 22)
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.presetsDialog.View())
	}

	return base
}

// renderNormalView renders the split layout with status bars.
func (a *App) renderNormalView() string {
	topBar := lipgloss.NewStyle().
		Width(a.width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(a.formatStatusBar("datadeck · "+a.collection.Name, a.summaryLine()))

	bottomLeft := "[tab] panel · [/] search · [f] filters · [?] help · [q] quit"
	if a.statusLine != "" {
		bottomLeft = a.statusLine + " · " + bottomLeft
	}
	bottomBar := lipgloss.NewStyle().
		Width(a.width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomLeft, a.phaseLabel()))

	a.leftPane.Content = a.sidebar.View()

	var right strings.Builder
	right.WriteString(a.viewTabs.View(a.rightPane.Width))
	right.WriteString("\n")
	if a.collection.Timeline {
		right.WriteString(a.timelineBar.View(a.controller.State().Window))
		right.WriteString("\n")
	}
	tableHeight := a.rightPane.Height - 3
	if a.detailPane.Visible {
		a.detailPane.Width = a.rightPane.Width
		a.detailPane.MaxHeight = a.rightPane.Height / 3
		tableHeight -= a.detailPane.MaxHeight
	}
	a.tableView.Width = a.rightPane.Width
	a.tableView.Height = max(tableHeight, 4)
	right.WriteString(a.tableView.View())
	if a.detailPane.Visible {
		right.WriteString("\n")
		right.WriteString(a.detailPane.View())
	}
	a.rightPane.Content = right.String()

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.leftPane.View(),
		a.rightPane.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		panels,
		bottomBar,
	)
}

// summaryLine flattens the summary payload into "key 123 · key 45".
func (a *App) summaryLine() string {
	if len(a.summary) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a.summary))
	for k := range a.summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		switch v := a.summary[k].(type) {
		case float64:
			parts = append(parts, fmt.Sprintf("%s %s", columns.Humanize(k), strconv.FormatFloat(v, 'f', -1, 64)))
		case string:
			parts = append(parts, fmt.Sprintf("%s %s", columns.Humanize(k), v))
		}
	}
	return strings.Join(parts, " · ")
}

func (a *App) phaseLabel() string {
	switch a.controller.Phase() {
	case query.PhaseLoading:
		return "loading…"
	case query.PhaseRefetching:
		return "refreshing…"
	case query.PhaseError:
		return "error"
	default:
		return ""
	}
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.width <= 0 || a.height <= 0 {
		return
	}

	// Top bar + bottom bar
	contentHeight := a.height - 2
	if contentHeight < 5 {
		contentHeight = 5
	}

	leftWidth := a.width / 5
	if leftWidth < 18 {
		leftWidth = 18
	}
	rightWidth := a.width - leftWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
		leftWidth = a.width - rightWidth - 4
	}

	a.leftPane.Width = leftWidth
	a.leftPane.Height = contentHeight
	a.rightPane.Width = rightWidth
	a.rightPane.Height = contentHeight
}

// updatePanelStyles updates panel styling based on focus
func (a *App) updatePanelStyles() {
	a.leftPane.Focused = a.focused == leftPanel
	a.rightPane.Focused = a.focused == rightPanel
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	availableWidth := a.width - 4
	if availableWidth < 0 {
		availableWidth = 0
	}

	leftLen := len(left)
	rightLen := len(right)

	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return left[:availableWidth-rightLen] + right
		}
		if availableWidth <= leftLen {
			return left[:availableWidth]
		}
		return left
	}

	spacing := availableWidth - leftLen - rightLen
	return left + strings.Repeat(" ", spacing) + right
}

// showError displays the error overlay.
func (a *App) showError(title, message string) {
	a.errorOverlay.SetError(title, message)
	a.overlay = overlayError
}
