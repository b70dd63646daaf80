package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/docsmith/internal/clip"
	"github.com/mithrel/docsmith/internal/render"
	"github.com/mithrel/docsmith/internal/session"
	"github.com/mithrel/docsmith/pkg/api"
)

// Options configures an interactive session.
type Options struct {
	Generator Generator
	Copier    clip.Copier
	Kind      api.Kind
	View      api.ViewMode
	Style     string
	WordWrap  int
	BaseURL   string
	// Input pre-fills the URL field; with AutoSubmit it is submitted at start.
	Input      string
	AutoSubmit bool
}

// Run opens the interactive generator and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := newModel(ctx, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// chromeHeight is the number of rows used by everything but the viewport.
const chromeHeight = 8

type model struct {
	ctx      context.Context
	gen      Generator
	copier   clip.Copier
	baseURL  string
	wrap     int
	renderer *render.Renderer

	state   session.State
	input   textinput.Model
	spinner spinner.Model
	vp      viewport.Model
	modal   *errorModal

	width   int
	height  int
	status  string
	initCmd tea.Cmd
}

func newModel(ctx context.Context, opts Options) (model, error) {
	r, err := render.New(opts.Style, opts.WordWrap)
	if err != nil {
		return model{}, err
	}
	copier := opts.Copier
	if copier == nil {
		copier = clip.System{}
	}

	ti := textinput.New()
	ti.Prompt = "repo> "
	ti.Placeholder = "https://github.com/owner/repo"
	ti.CharLimit = 512
	ti.Width = 60
	ti.SetValue(opts.Input)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := model{
		ctx:      ctx,
		gen:      opts.Generator,
		copier:   copier,
		baseURL:  opts.BaseURL,
		wrap:     r.Wrap(),
		renderer: r,
		state:    session.New(opts.Kind, opts.View),
		input:    ti,
		spinner:  sp,
		vp:       viewport.New(80, 24-chromeHeight),
	}
	m.state = session.Reduce(m.state, session.InputChanged{Text: opts.Input})
	if opts.AutoSubmit {
		var cmd tea.Cmd
		m, cmd = m.submit()
		m.initCmd = cmd
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initCmd)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		if m.modal != nil {
			m.modal, _ = m.modal.update(msg)
		}
		return m, nil

	case generatedMsg:
		if m.state.Pending == nil || *m.state.Pending != msg.req {
			return m, nil
		}
		m.state = session.Finish(m.state, msg.res, msg.err)
		switch m.state.Phase {
		case session.PhaseLoaded:
			m.status = fmt.Sprintf("Generated %s", kindLabel(msg.res.Kind))
			if d := formatDuration(msg.dur); d != "" {
				m.status += " in " + d
			}
			m.refreshContent()
			m.vp.GotoTop()
		case session.PhaseFailed:
			m.status = ""
			m.modal = newErrorModal(m.state.Notice, m.state.Err, m.width, m.height)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.status = "Content copied!"
		}
		return m, nil

	case spinner.TickMsg:
		if m.state.Phase != session.PhaseSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.state.Phase == session.PhaseFailed {
			return m.updateFailed(msg)
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.state.Notice != "" {
				m.state = session.Reduce(m.state, session.Dismiss{})
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "tab":
			m.state = session.Reduce(m.state, session.KindSelected{Kind: m.state.Kind.Next()})
			return m, nil
		case "shift+tab":
			m.state = session.Reduce(m.state, session.KindSelected{Kind: prevKind(m.state.Kind)})
			return m, nil
		case "ctrl+r":
			m.state = session.Reduce(m.state, session.ToggleView{})
			m.refreshContent()
			return m, nil
		case "ctrl+y":
			if m.state.Result == nil || m.state.Result.Text == "" {
				m.status = "Nothing to copy"
				return m, nil
			}
			return m, copyCmd(m.copier, m.state.Result.Text)
		case "pgup", "pgdown", "up", "down", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.state.Input {
		m.state = session.Reduce(m.state, session.InputChanged{Text: m.input.Value()})
	}
	return m, cmd
}

func (m model) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.state = session.Reduce(m.state, session.Dismiss{})
		m.modal = nil
		return m, nil
	}
	if m.modal == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.update(msg)
	return m, cmd
}

// submit starts a generation if the state machine accepts it.
func (m model) submit() (model, tea.Cmd) {
	accepted := m.state.CanSubmit()
	next, req := session.Begin(m.state)
	m.state = next
	if req == nil {
		if accepted && next.Phase == session.PhaseIdle && next.Err != nil {
			m.gen.Reject(next.Input, next.Err)
		}
		return m, nil
	}
	m.status = ""
	m.refreshContent()
	return m, tea.Batch(m.spinner.Tick, generateCmd(m.ctx, m.gen, *req))
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.vp.Width = m.width
	m.vp.Height = max(3, m.height-chromeHeight)
	m.input.Width = max(20, m.width-len(m.input.Prompt)-16)

	wrap := min(m.wrap, max(20, m.width-2))
	if r, err := m.renderer.WithWrap(wrap); err == nil {
		m.renderer = r
	}
	m.refreshContent()
}

// refreshContent puts the current result into the viewport in the selected
// view mode.
func (m *model) refreshContent() {
	res := m.state.Result
	if res == nil {
		m.vp.SetContent("")
		return
	}
	if m.state.View == api.ViewRaw {
		m.vp.SetContent(res.Text)
		return
	}
	out, err := m.renderer.Render(res.Text)
	if err != nil {
		m.status = fmt.Sprintf("Preview unavailable: %v", err)
		m.vp.SetContent(res.Text)
		return
	}
	m.vp.SetContent(out)
}

func (m model) renderHeader() string {
	h := titleStyle.Render("docSmith")
	if m.baseURL != "" {
		h += dimStyle.Render("  " + m.baseURL)
	}
	return h
}

func (m model) renderKinds() string {
	parts := make([]string, 0, len(api.Kinds()))
	for _, k := range api.Kinds() {
		if k == m.state.Kind {
			parts = append(parts, activeTabStyle.Render(kindLabel(k)))
		} else {
			parts = append(parts, tabStyle.Render(kindLabel(k)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) renderInput() string {
	btn := disabledButtonStyle.Render("Generate")
	switch {
	case m.state.Phase == session.PhaseSubmitting:
		btn = disabledButtonStyle.Render("Generating…")
	case m.state.CanSubmit():
		btn = buttonStyle.Render("Generate")
	}
	return m.input.View() + "  " + btn
}

func (m model) renderBody() string {
	switch m.state.Phase {
	case session.PhaseSubmitting:
		target, kind := m.state.Input, m.state.Kind
		if m.state.Pending != nil {
			target, kind = m.state.Pending.URL, m.state.Pending.Kind
		}
		return fmt.Sprintf("%s Generating %s for %s…", m.spinner.View(), strings.ToLower(kindLabel(kind)), target)
	case session.PhaseIdle:
		if m.state.Result == nil {
			return dimStyle.Render("Paste a GitHub repository URL and press enter.")
		}
	}
	if m.state.Result == nil {
		return ""
	}
	views := []api.ViewMode{api.ViewPreview, api.ViewRaw}
	tabs := make([]string, 0, len(views))
	for _, v := range views {
		label := "Preview"
		if v == api.ViewRaw {
			label = "Raw"
		}
		if v == m.state.View {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" + m.vp.View()
}

func (m model) renderFooter() string {
	left := "tab=kind • enter=generate • ctrl+r=preview/raw • ctrl+y=copy • esc=quit"
	right := m.status

	width := m.width
	if width <= 0 {
		width = 80
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		space = 1
	}
	return dimStyle.Render(left) + strings.Repeat(" ", space) + right
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderKinds())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	if m.state.Phase == session.PhaseIdle && m.state.Notice != "" {
		b.WriteString(noticeStyle.Render(m.state.Notice))
	}
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	base := b.String()

	if m.state.Phase == session.PhaseFailed && m.modal != nil {
		return m.modal.overlay(base, m.width, m.height)
	}
	return base
}
