package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/tui/detail"
)

// fakeAPI is an in-memory Call Simulation Service.
type fakeAPI struct {
	mu sync.Mutex

	calls       []callsim.CallSummary
	listErr     error
	audits      map[string]callsim.AuditRecord
	auditErrs   map[string]error
	feedback    map[string]string
	initiateErr error

	listPhones    []string
	auditFetches  map[string]int
	feedbackCalls map[string]int
	initiated     []callsim.InitiateRequest
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		audits:        map[string]callsim.AuditRecord{},
		auditErrs:     map[string]error{},
		feedback:      map[string]string{},
		auditFetches:  map[string]int{},
		feedbackCalls: map[string]int{},
	}
}

func (f *fakeAPI) ListCalls(_ context.Context, phone string) ([]callsim.CallSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listPhones = append(f.listPhones, phone)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]callsim.CallSummary(nil), f.calls...), nil
}

func (f *fakeAPI) GetAudit(_ context.Context, sid string) (callsim.AuditRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auditFetches[sid]++
	if err := f.auditErrs[sid]; err != nil {
		return callsim.AuditRecord{}, err
	}
	return f.audits[sid], nil
}

func (f *fakeAPI) GetFeedback(_ context.Context, sid string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedbackCalls[sid]++
	return f.feedback[sid], nil
}

func (f *fakeAPI) InitiateCall(_ context.Context, req callsim.InitiateRequest) (callsim.InitiateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initiated = append(f.initiated, req)
	if f.initiateErr != nil {
		return callsim.InitiateResponse{}, f.initiateErr
	}
	return callsim.InitiateResponse{
		CallSID: "CA-new",
		Status:  callsim.StatusInitiated,
		Message: "Call initiated to " + req.PhoneNumber,
	}, nil
}

var (
	keyEnterMsg = tea.KeyMsg{Type: tea.KeyEnter}
	keyDownMsg  = tea.KeyMsg{Type: tea.KeyDown}
	keyEscMsg   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press sends a key and runs whatever command it produces to completion.
func press(t *testing.T, m *CallListModel, key tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(key)
	run(t, m, cmd)
}

// run executes cmd and feeds its message back into m, following batches.
func run(t *testing.T, m *CallListModel, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(t, m, c)
		}
		return
	}
	if _, ok := msg.(tea.QuitMsg); ok {
		return
	}
	_, next := m.Update(msg)
	run(t, m, next)
}

// load delivers the summary fetch without starting the spinner.
func load(t *testing.T, m *CallListModel) {
	t.Helper()
	run(t, m, m.fetchCallsCmd())
}

func twoCalls() []callsim.CallSummary {
	return []callsim.CallSummary{
		{CallSID: "CA1", PhoneNumber: "+15551230001", ScenarioID: "bank_fraud", Status: callsim.StatusCompleted},
		{CallSID: "CA2", PhoneNumber: "+15551230001", ScenarioID: "irs", Status: callsim.StatusNoAnswer},
	}
}

func TestCallListModel_LoadsSummariesInOrder(t *testing.T) {
	api := newFakeAPI()
	api.calls = twoCalls()
	m := NewAuditModel(context.Background(), api)

	assert.Equal(t, ViewStateLoading, m.State())
	assert.NotNil(t, m.Init())

	load(t, m)

	require.Equal(t, ViewStateList, m.State())
	rows := m.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "CA1", rows[0].Summary.CallSID)
	assert.Equal(t, "CA2", rows[1].Summary.CallSID)
	assert.True(t, rows[0].Selected)
	assert.Equal(t, "no answer", rows[1].Status)
	assert.Equal(t, []string{""}, api.listPhones)

	view := m.View()
	assert.Contains(t, view, "Call audit")
	assert.Contains(t, view, "CA1")
	assert.Contains(t, view, "no answer")
}

func TestCallListModel_EmptyList(t *testing.T) {
	m := NewAuditModel(context.Background(), newFakeAPI())
	load(t, m)

	assert.Equal(t, ViewStateList, m.State())
	assert.Empty(t, m.Rows())
	assert.Contains(t, m.View(), "No calls yet.")

	press(t, m, keyEnterMsg)
	_, ok := m.Disclosure().Expanded()
	assert.False(t, ok)
}

func TestCallListModel_ListFailureShowsBanner(t *testing.T) {
	api := newFakeAPI()
	api.listErr = &callsim.APIError{StatusCode: 503, Message: "request failed"}
	m := NewAuditModel(context.Background(), api)

	load(t, m)

	assert.Equal(t, ViewStateError, m.State())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "Could not load calls")

	// The error state stays interactive and can retry.
	api.listErr = nil
	api.calls = twoCalls()
	_, cmd := m.Update(runeKey('r'))
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Contains(t, m.View(), "Retrying...")
	require.NotNil(t, cmd)

	load(t, m)
	assert.Contains(t, RenderLoading(m.loading), "Loading calls...")
	assert.Equal(t, ViewStateList, m.State())
	assert.Len(t, m.Rows(), 2)
}

func TestCallListModel_ToggleFetchesOnce(t *testing.T) {
	api := newFakeAPI()
	api.calls = twoCalls()
	api.audits["CA1"] = callsim.AuditRecord{CallSID: "CA1"}
	m := NewAuditModel(context.Background(), api)
	load(t, m)

	// Expanding marks the row loading before the fetch returns.
	_, cmd := m.Update(keyEnterMsg)
	require.NotNil(t, cmd)
	assert.Equal(t, detail.Loading, m.Rows()[0].AuditState)
	assert.Contains(t, m.View(), "Loading call details")
	run(t, m, cmd)

	row := m.Rows()[0]
	assert.True(t, row.Expanded)
	assert.Equal(t, detail.Present, row.AuditState)

	press(t, m, keyEnterMsg)
	assert.False(t, m.Rows()[0].Expanded)

	press(t, m, keyEnterMsg)
	assert.True(t, m.Rows()[0].Expanded)
	assert.Equal(t, 1, api.auditFetches["CA1"])
	assert.Equal(t, 1, m.Stores().Audit.FetchCount())
}

func TestCallListModel_OnlyOneRowExpanded(t *testing.T) {
	api := newFakeAPI()
	api.calls = twoCalls()
	m := NewAuditModel(context.Background(), api)
	load(t, m)

	press(t, m, keyEnterMsg)
	press(t, m, keyDownMsg)
	press(t, m, keyEnterMsg)

	rows := m.Rows()
	assert.False(t, rows[0].Expanded)
	assert.True(t, rows[1].Expanded)

	press(t, m, keyEscMsg)
	_, ok := m.Disclosure().Expanded()
	assert.False(t, ok)
}

func TestCallListModel_FeedbackRequiresTranscript(t *testing.T) {
	api := newFakeAPI()
	api.calls = twoCalls()
	api.audits["CA1"] = callsim.AuditRecord{CallSID: "CA1"}
	api.audits["CA2"] = callsim.AuditRecord{
		CallSID:    "CA2",
		Transcript: []callsim.TranscriptEntry{{Turn: 1, Speaker: callsim.SpeakerScammer, Text: "Hello"}},
	}
	api.feedback["CA2"] = "Hang up on unexpected bank calls."
	m := NewAuditModel(context.Background(), api)
	load(t, m)

	// Nothing expanded: feedback key does nothing.
	press(t, m, runeKey('f'))
	assert.Empty(t, api.feedbackCalls)

	// Empty transcript: feedback unavailable.
	press(t, m, keyEnterMsg)
	assert.False(t, m.Rows()[0].FeedbackEnabled)
	assert.Contains(t, m.View(), "Feedback needs a transcript.")
	press(t, m, runeKey('f'))
	assert.Zero(t, api.feedbackCalls["CA1"])

	// Non-empty transcript: feedback available.
	press(t, m, keyDownMsg)
	press(t, m, keyEnterMsg)
	assert.True(t, m.Rows()[1].FeedbackEnabled)
	assert.Contains(t, m.View(), "[f] Get feedback")

	_, cmd := m.Update(runeKey('f'))
	require.NotNil(t, cmd)
	assert.False(t, m.Rows()[1].FeedbackEnabled, "disabled while loading")
	assert.Contains(t, m.View(), "Generating feedback")
	assert.Nil(t, m.requestFeedback(), "second request while loading is a no-op")
	run(t, m, cmd)

	row := m.Rows()[1]
	assert.Equal(t, detail.Present, row.FeedbackState)
	assert.Equal(t, "Hang up on unexpected bank calls.", row.Feedback)
	assert.Contains(t, m.View(), "Hang up on unexpected bank calls.")
	assert.Equal(t, 1, api.feedbackCalls["CA2"])
}

func TestCallListModel_RowFailureIsIsolated(t *testing.T) {
	api := newFakeAPI()
	api.calls = twoCalls()
	api.audits["CA1"] = callsim.AuditRecord{CallSID: "CA1"}
	api.auditErrs["CA2"] = &callsim.APIError{StatusCode: 404, Message: "Call not found"}
	m := NewAuditModel(context.Background(), api)
	load(t, m)

	press(t, m, keyEnterMsg) // CA1 succeeds
	press(t, m, keyDownMsg)
	press(t, m, keyEnterMsg) // CA2 fails

	assert.Equal(t, ViewStateList, m.State())
	assert.NoError(t, m.Err())

	rows := m.Rows()
	assert.Equal(t, detail.Present, rows[0].AuditState)
	assert.False(t, rows[0].Expanded)
	assert.Equal(t, detail.Absent, rows[1].AuditState)
	assert.True(t, rows[1].Expanded)
	require.Error(t, rows[1].AuditErr)
	assert.Contains(t, m.View(), "Could not load call details: Call not found")

	// Collapse and re-expand retries.
	delete(api.auditErrs, "CA2")
	api.audits["CA2"] = callsim.AuditRecord{CallSID: "CA2"}
	press(t, m, keyEnterMsg)
	press(t, m, keyEnterMsg)
	assert.Equal(t, detail.Present, m.Rows()[1].AuditState)
	assert.Equal(t, 2, api.auditFetches["CA2"])
	assert.Equal(t, 1, api.auditFetches["CA1"])
}

func TestCallListModel_ReloadKeepsCaches(t *testing.T) {
	api := newFakeAPI()
	api.calls = twoCalls()
	m := NewAuditModel(context.Background(), api)
	load(t, m)
	press(t, m, keyEnterMsg)

	api.calls = append(api.calls, callsim.CallSummary{CallSID: "CA3", Status: callsim.StatusRinging})
	press(t, m, runeKey('r'))

	assert.Len(t, m.Rows(), 3)
	assert.Equal(t, detail.Present, m.Rows()[0].AuditState)
	assert.Equal(t, 1, api.auditFetches["CA1"])
}

func TestCallListModel_QuitKeys(t *testing.T) {
	m := NewAuditModel(context.Background(), newFakeAPI())
	load(t, m)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.Empty(t, m.View())
}

func TestPersonCallsModel_StartsCall(t *testing.T) {
	api := newFakeAPI()
	api.calls = twoCalls()
	m := NewPersonCallsModel(context.Background(), api, "+15551230001", WithDefaultScenario("irs_scam"))
	load(t, m)

	assert.Equal(t, []string{"+15551230001"}, api.listPhones)
	assert.Contains(t, m.View(), "Calls to +15551230001")
	assert.Contains(t, m.View(), "[c] New call")

	press(t, m, runeKey('c'))
	require.True(t, m.Prompting())
	assert.Contains(t, m.View(), "Scenario:")

	press(t, m, keyEnterMsg)
	assert.False(t, m.Prompting())
	require.Len(t, api.initiated, 1)
	assert.Equal(t, callsim.InitiateRequest{PhoneNumber: "+15551230001", ScenarioID: "irs_scam"}, api.initiated[0])
	assert.Equal(t, "Call initiated to +15551230001", m.Notice())
	assert.Len(t, api.listPhones, 2, "list reloads after a call starts")
}

func TestPersonCallsModel_CallFailureShowsNotice(t *testing.T) {
	api := newFakeAPI()
	api.initiateErr = errors.New("twilio unavailable")
	m := NewPersonCallsModel(context.Background(), api, "+15551230001")
	load(t, m)

	press(t, m, runeKey('c'))
	press(t, m, keyEnterMsg)

	assert.Equal(t, callsim.DefaultScenarioID, api.initiated[0].ScenarioID)
	assert.Contains(t, m.Notice(), "twilio unavailable")
	assert.Len(t, api.listPhones, 1)
}

func TestPersonCallsModel_PromptCancel(t *testing.T) {
	api := newFakeAPI()
	m := NewPersonCallsModel(context.Background(), api, "+15551230001")
	load(t, m)

	press(t, m, runeKey('c'))
	press(t, m, keyEscMsg)
	assert.False(t, m.Prompting())
	assert.Empty(t, api.initiated)
}

func TestAuditModel_CallKeyDisabled(t *testing.T) {
	m := NewAuditModel(context.Background(), newFakeAPI())
	load(t, m)

	press(t, m, runeKey('c'))
	assert.False(t, m.Prompting())
	assert.NotContains(t, m.View(), "[c] New call")
}

func TestCallListModel_WindowResize(t *testing.T) {
	m := NewAuditModel(context.Background(), newFakeAPI())
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	assert.Nil(t, cmd)
	assert.Equal(t, 140, m.virtualList.Width())
	assert.Equal(t, 50-headerHeight-footerHeight, m.virtualList.Height())
}

func longTranscriptAPI(calls, turns int) *fakeAPI {
	api := newFakeAPI()
	for i := range calls {
		sid := fmt.Sprintf("CA%02d", i)
		api.calls = append(api.calls, callsim.CallSummary{
			CallSID: sid, PhoneNumber: "+15551230001", ScenarioID: "bank_fraud", Status: callsim.StatusCompleted,
		})
		rec := callsim.AuditRecord{
			CallSID: sid,
			Events: []callsim.Event{
				{EventType: "call_ended", Data: map[string]any{"duration": float64(125)}},
			},
		}
		for turn := 1; turn <= turns; turn++ {
			rec.Transcript = append(rec.Transcript, callsim.TranscriptEntry{
				Turn: turn, Speaker: callsim.SpeakerScammer, Text: fmt.Sprintf("line %d of %s", turn, sid),
			})
		}
		api.audits[sid] = rec
	}
	return api
}

func viewLines(m *CallListModel) []string {
	return strings.Split(m.View(), "\n")
}

func TestCallListModel_ExpandedViewFitsTerminal(t *testing.T) {
	const width, height = 100, 30

	m := NewAuditModel(context.Background(), longTranscriptAPI(20, 30))
	load(t, m)
	_, cmd := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	require.Nil(t, cmd)

	press(t, m, keyEnterMsg)
	require.Equal(t, detail.Present, m.Rows()[0].AuditState)

	lines := viewLines(m)
	assert.LessOrEqual(t, len(lines), height)

	view := strings.Join(lines, "\n")
	assert.Contains(t, view, "Call audit")
	assert.Contains(t, view, "Scenario")
	assert.Contains(t, view, "CA00")
	assert.Contains(t, view, "How it went")
	assert.Contains(t, view, "2m 5s")
	assert.NotContains(t, view, "line 30 of CA00", "the tail of the transcript is below the fold")

	// With the prompt open the footer grows by one line.
	m.phone = "+15551230001"
	press(t, m, runeKey('c'))
	require.True(t, m.Prompting())
	assert.LessOrEqual(t, len(viewLines(m)), height)
}

func TestCallListModel_DetailPaneScrolls(t *testing.T) {
	m := NewAuditModel(context.Background(), longTranscriptAPI(3, 40))
	load(t, m)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})

	press(t, m, keyEnterMsg)
	_ = m.View()
	assert.Zero(t, m.DetailPane().YOffset)

	for range 10 {
		press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	}
	view := m.View()
	assert.Positive(t, m.DetailPane().YOffset)
	assert.Contains(t, view, "line 40 of CA00")
	assert.NotContains(t, view, "How it went")
	assert.LessOrEqual(t, len(viewLines(m)), 24)

	bottom := m.DetailPane().YOffset
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Less(t, m.DetailPane().YOffset, bottom)

	// Expanding another call starts its detail at the top.
	press(t, m, keyDownMsg)
	press(t, m, keyEnterMsg)
	view = m.View()
	assert.Zero(t, m.DetailPane().YOffset)
	assert.Contains(t, view, "How it went")
	assert.Contains(t, view, "line 1 of CA01")
}

func TestCallListModel_CollapseGivesListFullHeight(t *testing.T) {
	m := NewAuditModel(context.Background(), longTranscriptAPI(20, 5))
	load(t, m)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	full := m.virtualList.Height()

	press(t, m, keyEnterMsg)
	assert.Less(t, m.virtualList.Height(), full)
	assert.Equal(t, 30-headerHeight-footerHeight, m.virtualList.Height()+detailRuleHeight+m.DetailPane().Height)

	press(t, m, keyEscMsg)
	assert.Equal(t, full, m.virtualList.Height())
	assert.NotContains(t, m.View(), "How it went")
}
