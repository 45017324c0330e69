package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/logging"
	"github.com/avenka29/Hackathon-NCSU/internal/tui/detail"
	listview "github.com/avenka29/Hackathon-NCSU/internal/tui/list"
)

const (
	// headerHeight is the number of lines above the list (title, notice, column header).
	headerHeight = 4

	// footerHeight is reserved for the prompt and help line.
	footerHeight = 3

	// detailRuleHeight is the divider between the list and the detail pane.
	detailRuleHeight = 1

	// listShareDivisor gives the list a third of the body while a row is expanded.
	listShareDivisor = 3

	scenarioInputCharLimit = 64
	scenarioInputWidth     = 32
)

// SummarySource loads the call summaries a screen lists.
type SummarySource func(ctx context.Context) ([]callsim.CallSummary, error)

// Messages for CallListModel.
type callsLoadedMsg struct {
	calls []callsim.CallSummary
	err   error
}

type callInitiatedMsg struct {
	resp callsim.InitiateResponse
	err  error
}

// CallListOption configures a CallListModel.
type CallListOption func(*CallListModel)

// WithTitle sets the heading shown above the list.
func WithTitle(title string) CallListOption {
	return func(m *CallListModel) {
		m.title = title
	}
}

// WithDefaultScenario sets the scenario prefilled in the call prompt.
func WithDefaultScenario(id string) CallListOption {
	return func(m *CallListModel) {
		if id != "" {
			m.defaultScenario = id
		}
	}
}

// CallListModel is the Bubble Tea model for a list of calls with one
// expandable row. It owns its audit and feedback caches.
type CallListModel struct {
	ctx    context.Context
	api    callsim.API
	source SummarySource

	// View state
	state ViewState
	title string
	calls []callsim.CallSummary
	err   error

	// Caches and disclosure
	stores     detail.CallStores
	disclosure *listview.Disclosure

	// Interactive components
	virtualList *listview.VirtualListModel[callsim.CallSummary]
	loading     *LoadingState

	// detailPane scrolls the expanded row's detail below the list.
	detailPane viewport.Model
	detailFor  string

	width  int
	height int

	// Call prompt, enabled when phone is set.
	phone           string
	defaultScenario string
	prompting       bool
	scenarioInput   textinput.Model

	// notice is a one-line outcome banner; noticeIsError selects its style.
	notice        string
	noticeIsError bool
	refreshing    bool
}

// NewCallListModel creates a model that lists the calls returned by source.
func NewCallListModel(
	ctx context.Context,
	api callsim.API,
	source SummarySource,
	opts ...CallListOption,
) *CallListModel {
	m := &CallListModel{
		ctx:             ctx,
		api:             api,
		source:          source,
		state:           ViewStateLoading,
		title:           "Calls",
		stores:          detail.NewCallStores(api),
		loading:         NewLoadingState(),
		width:           defaultWidth,
		height:          defaultHeight,
		defaultScenario: callsim.DefaultScenarioID,
	}
	m.disclosure = listview.NewDisclosure(func(id string) tea.Cmd {
		return m.stores.Audit.Ensure(m.ctx, id)
	})
	m.scenarioInput = newScenarioInput()
	m.detailPane = viewport.New(m.width, 0)

	for _, opt := range opts {
		opt(m)
	}

	m.virtualList = listview.NewVirtualListModel(m.calls, m.listHeight(), m.width, m.renderRow)
	return m
}

// NewAuditModel lists every call the service knows about.
func NewAuditModel(ctx context.Context, api callsim.API, opts ...CallListOption) *CallListModel {
	source := func(ctx context.Context) ([]callsim.CallSummary, error) {
		return api.ListCalls(ctx, "")
	}
	opts = append([]CallListOption{WithTitle("Call audit")}, opts...)
	return NewCallListModel(ctx, api, source, opts...)
}

// NewPersonCallsModel lists the calls placed to one phone number and
// enables starting a new call to it.
func NewPersonCallsModel(
	ctx context.Context,
	api callsim.API,
	phone string,
	opts ...CallListOption,
) *CallListModel {
	source := func(ctx context.Context) ([]callsim.CallSummary, error) {
		return api.ListCalls(ctx, phone)
	}
	opts = append([]CallListOption{WithTitle("Calls to " + phone)}, opts...)
	m := NewCallListModel(ctx, api, source, opts...)
	m.phone = phone
	return m
}

func newScenarioInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "scenario id"
	ti.CharLimit = scenarioInputCharLimit
	ti.Width = scenarioInputWidth
	return ti
}

// Init starts the spinner and the summary fetch.
func (m *CallListModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCallsCmd())
}

func (m *CallListModel) fetchCallsCmd() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		calls, err := source(ctx)
		return callsLoadedMsg{calls: calls, err: err}
	}
}

// Update handles messages and updates the model state.
func (m *CallListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.stores.Audit.Resolve(msg) || m.stores.Feedback.Resolve(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case callsLoadedMsg:
		return m.handleCallsLoaded(msg)
	case callInitiatedMsg:
		return m.handleCallInitiated(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Spinner ticks and anything else the spinner understands.
	return m, m.loading.Update(msg)
}

func (m *CallListModel) handleCallsLoaded(msg callsLoadedMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false
	if msg.err != nil {
		logging.FromContext(m.ctx).Warn().Ctx(m.ctx).Err(msg.err).Msg("loading calls failed")
		m.err = msg.err
		m.state = ViewStateError
		return m, nil
	}

	m.err = nil
	m.loading.SetMessage(defaultLoadingMessage)
	m.calls = msg.calls
	m.virtualList.SetItems(m.calls)
	m.layout()
	m.state = ViewStateList
	return m, nil
}

func (m *CallListModel) handleCallInitiated(msg callInitiatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setNotice(fmt.Sprintf("Could not start call: %v", msg.err), true)
		return m, nil
	}

	notice := msg.resp.Message
	if notice == "" {
		notice = "Call " + msg.resp.CallSID + " started"
	}
	m.setNotice(notice, false)
	return m, m.reload()
}

func (m *CallListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch m.state {
	case ViewStateLoading:
		if key == keyQuit {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		return m, nil
	case ViewStateError:
		return m.handleErrorKey(key)
	case ViewStateList:
		return m.handleListKey(msg)
	case ViewStateQuitting:
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m *CallListModel) handleErrorKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyReload:
		m.state = ViewStateLoading
		m.loading.SetMessage("Retrying...")
		return m, tea.Batch(m.loading.Init(), m.fetchCallsCmd())
	}
	return m, nil
}

func (m *CallListModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter, keySpace, keySpaceAlt:
		return m, m.toggleSelected()
	case keyFeedback:
		return m, m.requestFeedback()
	case keyReload:
		return m, m.reload()
	case keyEsc:
		m.disclosure.Collapse()
		m.layout()
		m.notice = ""
		return m, nil
	case keyDetailDown:
		m.detailPane.HalfPageDown()
		return m, nil
	case keyDetailUp:
		m.detailPane.HalfPageUp()
		return m, nil
	case keyCall:
		if m.phone != "" {
			m.openPrompt()
			return m, nil
		}
		return m, nil
	}

	updated, cmd := m.virtualList.Update(msg)
	if vl, ok := updated.(*listview.VirtualListModel[callsim.CallSummary]); ok {
		m.virtualList = vl
	}
	return m, cmd
}

func (m *CallListModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.closePrompt()
		return m, nil
	case keyEnter:
		scenario := strings.TrimSpace(m.scenarioInput.Value())
		if scenario == "" {
			scenario = m.defaultScenario
		}
		m.closePrompt()
		m.setNotice("Starting "+scenario+" call to "+m.phone+"...", false)
		return m, m.initiateCallCmd(scenario)
	}

	var cmd tea.Cmd
	m.scenarioInput, cmd = m.scenarioInput.Update(msg)
	return m, cmd
}

// toggleSelected expands or collapses the selected row.
func (m *CallListModel) toggleSelected() tea.Cmd {
	selected := m.virtualList.GetSelectedItem()
	if selected == nil {
		return nil
	}
	cmd := m.disclosure.Toggle(selected.CallSID)
	m.layout()
	return cmd
}

// requestFeedback fetches feedback for the expanded row when allowed.
func (m *CallListModel) requestFeedback() tea.Cmd {
	sid, ok := m.disclosure.Expanded()
	if !ok {
		return nil
	}
	return m.stores.Feedback.Ensure(m.ctx, sid)
}

// reload refetches the summaries. Cached details survive since they are
// keyed by call SID.
func (m *CallListModel) reload() tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true
	return m.fetchCallsCmd()
}

func (m *CallListModel) initiateCallCmd(scenario string) tea.Cmd {
	ctx, api, phone := m.ctx, m.api, m.phone
	return func() tea.Msg {
		resp, err := api.InitiateCall(ctx, callsim.InitiateRequest{PhoneNumber: phone, ScenarioID: scenario})
		return callInitiatedMsg{resp: resp, err: err}
	}
}

func (m *CallListModel) openPrompt() {
	m.prompting = true
	m.scenarioInput.SetValue(m.defaultScenario)
	m.scenarioInput.CursorEnd()
	m.scenarioInput.Focus()
}

func (m *CallListModel) closePrompt() {
	m.prompting = false
	m.scenarioInput.Blur()
}

func (m *CallListModel) setNotice(text string, isError bool) {
	m.notice = text
	m.noticeIsError = isError
}

// listHeight is the number of lines between the column header and the footer.
func (m *CallListModel) listHeight() int {
	return max(m.height-headerHeight-footerHeight, minHeight)
}

// layout splits the body between the list and the detail pane. With no
// expanded row the list takes the whole body.
func (m *CallListModel) layout() {
	body := m.listHeight()
	if _, ok := m.disclosure.Expanded(); !ok {
		m.virtualList.SetSize(m.width, body)
		m.detailPane.Width = m.width
		m.detailPane.Height = 0
		return
	}

	listRows := min(max(len(m.calls), 1), max(body/listShareDivisor, 1))
	m.virtualList.SetSize(m.width, listRows)
	m.detailPane.Width = m.width
	m.detailPane.Height = max(body-listRows-detailRuleHeight, 1)
}

// syncDetail refreshes the detail pane from the caches. Switching to another
// call scrolls the pane back to the top.
func (m *CallListModel) syncDetail() {
	sid, ok := m.disclosure.Expanded()
	if !ok {
		return
	}

	summary := callsim.CallSummary{CallSID: sid}
	for _, c := range m.calls {
		if c.CallSID == sid {
			summary = c
			break
		}
	}

	row := BuildRowView(summary, m.stores, false, true)
	if sid != m.detailFor {
		m.detailFor = sid
		m.detailPane.GotoTop()
	}
	m.detailPane.SetContent(renderCallDetail(row, m.loading.Frame(), m.width, interactiveFeedbackHint))
}

// renderRow is the virtual list's render function. Rows are always one line;
// the expanded row's detail lives in the detail pane.
func (m *CallListModel) renderRow(summary callsim.CallSummary, selected bool) string {
	row := BuildRowView(summary, m.stores, selected, m.disclosure.IsExpanded(summary.CallSID))
	return renderSummaryLine(row)
}

// DetailPane returns the scrollable detail pane.
func (m *CallListModel) DetailPane() viewport.Model {
	return m.detailPane
}

// Rows returns the view of every listed call, in list order.
func (m *CallListModel) Rows() []RowView {
	selected := m.virtualList.Selected()
	rows := make([]RowView, 0, len(m.calls))
	for i, c := range m.calls {
		rows = append(rows, BuildRowView(c, m.stores, i == selected, m.disclosure.IsExpanded(c.CallSID)))
	}
	return rows
}

// State returns the page-level view state.
func (m *CallListModel) State() ViewState {
	return m.state
}

// Err returns the list fetch error shown in the error state.
func (m *CallListModel) Err() error {
	return m.err
}

// Stores returns the caches owned by this screen.
func (m *CallListModel) Stores() detail.CallStores {
	return m.stores
}

// Disclosure returns the expand/collapse state.
func (m *CallListModel) Disclosure() *listview.Disclosure {
	return m.disclosure
}

// Notice returns the current outcome banner text.
func (m *CallListModel) Notice() string {
	return m.notice
}

// Prompting reports whether the call prompt is open.
func (m *CallListModel) Prompting() bool {
	return m.prompting
}

// View renders the current view.
func (m *CallListModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateError:
		return renderListError(m.title, m.err)
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}
