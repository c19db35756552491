package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
	"github.com/Mohammad-Palla/sherlock-game/core/eventsource"
	"github.com/Mohammad-Palla/sherlock-game/core/session"
)

const (
	flashDuration = 300 * time.Millisecond
	volumeStep    = 0.1
)

// controller is the part of the director the console drives.
type controller interface {
	Connect(ctx context.Context) error
	Snapshot() session.State
	ChooseClue(ctx context.Context, choice events.ClueChoice)
	SubmitDeduction(ctx context.Context, guess events.DeductionGuess)
	RequestWatsonHint(ctx context.Context)
	SetAgentMuted(agentID string, muted bool)
	SetSoloAgent(agentID string)
	SetVolumes(agents, ambience, sfx float64)
	ClearFlash()
	Mode() eventsource.Mode
	SetMode(ctx context.Context, mode eventsource.Mode) error
}

type stateMsg session.State
type noticeMsg string
type connectedMsg struct {
	mode eventsource.Mode
	err  error
}
type flashDoneMsg struct{}
type modeMsg struct {
	mode eventsource.Mode
	err  error
}

type keyMap struct {
	ClueA           key.Binding
	ClueB           key.Binding
	ClueC           key.Binding
	Underpass       key.Binding
	Cathedral       key.Binding
	Other           key.Binding
	Hint            key.Binding
	NextAgent       key.Binding
	Mute            key.Binding
	Solo            key.Binding
	LouderAmbience  key.Binding
	QuieterAmbience key.Binding
	ToggleMode      key.Binding
	Quit            key.Binding
}

var keys = keyMap{
	ClueA:           key.NewBinding(key.WithKeys("1"), key.WithHelp("1-3", "choose clue")),
	ClueB:           key.NewBinding(key.WithKeys("2")),
	ClueC:           key.NewBinding(key.WithKeys("3")),
	Underpass:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u/c/o", "deduce")),
	Cathedral:       key.NewBinding(key.WithKeys("c")),
	Other:           key.NewBinding(key.WithKeys("o")),
	Hint:            key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "ask watson")),
	NextAgent:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select agent")),
	Mute:            key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
	Solo:            key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "solo")),
	LouderAmbience:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "ambience")),
	QuieterAmbience: key.NewBinding(key.WithKeys("-")),
	ToggleMode:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "live/rehearsal")),
	Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type styles struct {
	title   lipgloss.Style
	panel   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	alert   lipgloss.Style
	flash   lipgloss.Style
	caption lipgloss.Style
	help    lipgloss.Style
}

func newStyles() styles {
	amber := lipgloss.Color("#e0a84e")
	fog := lipgloss.Color("#8a8fa3")
	blood := lipgloss.Color("#c0392b")

	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(amber),
		panel:   lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(fog).Padding(0, 1),
		label:   lipgloss.NewStyle().Foreground(amber),
		muted:   lipgloss.NewStyle().Foreground(fog),
		alert:   lipgloss.NewStyle().Bold(true).Foreground(blood),
		flash:   lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(blood),
		caption: lipgloss.NewStyle().Italic(true),
		help:    lipgloss.NewStyle().Foreground(fog),
	}
}

type console struct {
	ctx      context.Context
	director controller
	state    session.State
	styles   styles
	spinner  spinner.Model

	connected bool
	mode      eventsource.Mode
	selected  int
	notice    string
	width     int
}

func newConsole(ctx context.Context, director controller) console {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return console{
		ctx:      ctx,
		director: director,
		state:    director.Snapshot(),
		mode:     director.Mode(),
		styles:   newStyles(),
		spinner:  sp,
		width:    80,
	}
}

func (m console) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.connectCmd())
}

func (m console) connectCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.director.Connect(m.ctx)
		return connectedMsg{mode: m.director.Mode(), err: err}
	}
}

// do runs a director call off the event loop. Director calls notify
// subscribers, which send back into the program.
func (m console) do(f func()) tea.Cmd {
	return func() tea.Msg {
		f()
		return nil
	}
}

// toggleModeCmd flips between the live feed and the rehearsal. The director
// may fall back to the rehearsal, so the running mode is read back.
func (m console) toggleModeCmd() tea.Cmd {
	ctx, d := m.ctx, m.director
	return func() tea.Msg {
		next := eventsource.ModeLive
		if d.Mode() == eventsource.ModeLive {
			next = eventsource.ModeScripted
		}
		err := d.SetMode(ctx, next)
		return modeMsg{mode: d.Mode(), err: err}
	}
}

func (m console) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case connectedMsg:
		m.connected = msg.err == nil
		m.mode = msg.mode
		if msg.err != nil {
			m.notice = fmt.Sprintf("Could not start the session: %v", msg.err)
		}
		return m, nil

	case stateMsg:
		flashing := m.state.Flash
		m.state = session.State(msg)
		if m.state.Flash && !flashing {
			return m, tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{} })
		}
		return m, nil

	case flashDoneMsg:
		return m, m.do(m.director.ClearFlash)

	case modeMsg:
		m.mode = msg.mode
		if msg.err != nil {
			m.notice = fmt.Sprintf("Could not switch mode: %v", msg.err)
		}
		return m, nil

	case noticeMsg:
		m.notice = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m console) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx, d := m.ctx, m.director

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.ClueA):
		return m, m.do(func() { d.ChooseClue(ctx, events.ClueA) })
	case key.Matches(msg, keys.ClueB):
		return m, m.do(func() { d.ChooseClue(ctx, events.ClueB) })
	case key.Matches(msg, keys.ClueC):
		return m, m.do(func() { d.ChooseClue(ctx, events.ClueC) })
	case key.Matches(msg, keys.Underpass):
		return m, m.do(func() { d.SubmitDeduction(ctx, events.DeductionRiverUnderpass) })
	case key.Matches(msg, keys.Cathedral):
		return m, m.do(func() { d.SubmitDeduction(ctx, events.DeductionCathedral) })
	case key.Matches(msg, keys.Other):
		return m, m.do(func() { d.SubmitDeduction(ctx, events.DeductionOther) })
	case key.Matches(msg, keys.ToggleMode):
		return m, m.toggleModeCmd()
	case key.Matches(msg, keys.Hint):
		return m, m.do(func() { d.RequestWatsonHint(ctx) })
	case key.Matches(msg, keys.NextAgent):
		if n := len(m.state.Agents); n > 0 {
			m.selected = (m.selected + 1) % n
		}
		return m, nil
	case key.Matches(msg, keys.Mute):
		agent, ok := m.selectedAgent()
		if !ok {
			return m, nil
		}
		return m, m.do(func() { d.SetAgentMuted(agent.ID, !agent.Muted) })
	case key.Matches(msg, keys.Solo):
		agent, ok := m.selectedAgent()
		if !ok {
			return m, nil
		}
		solo := agent.ID
		if agent.Solo {
			solo = ""
		}
		return m, m.do(func() { d.SetSoloAgent(solo) })
	case key.Matches(msg, keys.LouderAmbience, keys.QuieterAmbience):
		volumes := m.state.Volumes
		if key.Matches(msg, keys.LouderAmbience) {
			volumes.Ambience += volumeStep
		} else {
			volumes.Ambience -= volumeStep
		}
		return m, m.do(func() { d.SetVolumes(volumes.Agents, volumes.Ambience, volumes.Sfx) })
	}
	return m, nil
}

func (m console) agentIDs() []string {
	ids := make([]string, 0, len(m.state.Agents))
	for id := range m.state.Agents {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m console) selectedAgent() (session.Agent, bool) {
	ids := m.agentIDs()
	if len(ids) == 0 {
		return session.Agent{}, false
	}
	return m.state.Agents[ids[m.selected%len(ids)]], true
}

func (m console) View() string {
	s := m.styles
	width := max(m.width-4, 20)

	var b strings.Builder
	title := fmt.Sprintf("%s  %s  scene %s  ambience %s", s.title.Render("THE CASE"), m.mode, m.state.CurrentScene, m.state.Ambience)
	if !m.connected {
		title = fmt.Sprintf("%s %s connecting", title, m.spinner.View())
	} else {
		title = fmt.Sprintf("%s  %s", title, s.muted.Render(fmt.Sprintf("%s %s", m.state.Connection.Status, m.state.Connection.Room)))
	}
	b.WriteString(title + "\n")

	if m.state.Flash {
		b.WriteString(s.flash.Render("  BANG  ") + "\n")
	}
	b.WriteString(m.timerView() + "\n")
	b.WriteString(s.panel.Width(width).Render(m.agentsView()) + "\n")
	b.WriteString(s.panel.Width(width).Render(m.evidenceView()) + "\n")
	b.WriteString(s.panel.Width(width).Render(m.captionsView(width-2)) + "\n")

	if m.notice != "" {
		b.WriteString(s.alert.Render(wordwrap.String(m.notice, width)) + "\n")
	}
	b.WriteString(s.help.Render(helpLine()))
	return b.String()
}

func (m console) timerView() string {
	s := m.styles
	var parts []string
	if timer := m.state.Timer; timer != nil {
		remaining := time.Duration(timer.RemainingSeconds) * time.Second
		clock := fmt.Sprintf("%02d:%02d", int(remaining.Minutes()), timer.RemainingSeconds%60)
		if timer.Running {
			parts = append(parts, s.label.Render("time left ")+clock)
		} else {
			parts = append(parts, s.muted.Render("timer stopped at "+clock))
		}
	}
	if outcome := m.state.CaseOutcome; outcome != nil {
		parts = append(parts, s.alert.Render("outcome "+string(*outcome)))
	}
	if label := m.state.LocationLabel; label != nil {
		parts = append(parts, s.label.Render("location ")+*label)
	}
	if m.state.Misdirected {
		parts = append(parts, s.alert.Render("misdirected"))
	}
	return strings.Join(parts, "  ")
}

func (m console) agentsView() string {
	s := m.styles
	ids := m.agentIDs()
	lines := make([]string, 0, len(ids))
	for i, id := range ids {
		agent := m.state.Agents[id]
		cursor := "  "
		if len(ids) > 0 && i == m.selected%len(ids) {
			cursor = "> "
		}
		meter := strings.Repeat("|", int(agent.Level*10))
		flags := ""
		if agent.Muted {
			flags += " muted"
		}
		if agent.Solo {
			flags += " solo"
		}
		lines = append(lines, fmt.Sprintf("%s%-20s %-10s%s", cursor, agent.Name, meter, s.muted.Render(flags)))
	}
	if len(lines) == 0 {
		return s.muted.Render("no agents yet")
	}
	return strings.Join(lines, "\n")
}

func (m console) evidenceView() string {
	s := m.styles
	if len(m.state.Evidence) == 0 {
		return s.muted.Render("no evidence yet")
	}
	lines := make([]string, 0, len(m.state.Evidence)+len(m.state.Links))
	for _, item := range m.state.Evidence {
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render(item.Title), s.muted.Render(item.Description)))
	}
	for _, link := range m.state.Links {
		lines = append(lines, s.muted.Render(fmt.Sprintf("%s <-> %s", link.FromID, link.ToID)))
	}
	return strings.Join(lines, "\n")
}

func (m console) captionsView(width int) string {
	s := m.styles
	if len(m.state.Captions) == 0 {
		return s.muted.Render("...")
	}
	lines := make([]string, 0, len(m.state.Captions))
	for _, caption := range m.state.Captions {
		name := caption.AgentID
		if agent, ok := m.state.Agents[caption.AgentID]; ok {
			name = agent.Name
		}
		lines = append(lines, s.label.Render(name+": ")+s.caption.Render(wordwrap.String(caption.Text, width-len(name)-2)))
	}
	return strings.Join(lines, "\n")
}

func helpLine() string {
	bindings := []key.Binding{keys.ClueA, keys.Underpass, keys.Hint, keys.NextAgent, keys.Mute, keys.Solo, keys.LouderAmbience, keys.ToggleMode, keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}
