package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-algoviz/pkg/algorithms"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/player"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// vizModel is one session shown in the terminal: a structure tab per
// kind, the kind's operations, an argument prompt and the player.
type vizModel struct {
	sess       *session.Session
	kinds      []model.Kind
	kindIndex  int
	ops        []algorithms.OperationSpec
	opIndex    int
	args       textinput.Model
	help       help.Model
	keys       keyMap
	playing    bool
	width      int
	height     int
	message    string
	messageErr bool
}

func initialModel(sess *session.Session) vizModel {
	ti := textinput.New()
	ti.Placeholder = "arguments, e.g. 42 or A B"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	m := vizModel{
		sess:  sess,
		kinds: model.Kinds(),
		args:  ti,
		help:  help.New(),
		keys:  keys,
	}
	for i, k := range m.kinds {
		if k == sess.Kind() {
			m.kindIndex = i
		}
	}
	m.ops = sess.Operations()
	return m
}

func (m vizModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m vizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		return m, m.advance()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.switchKind(1)
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.switchKind(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if len(m.ops) > 0 {
				m.opIndex = (m.opIndex + len(m.ops) - 1) % len(m.ops)
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if len(m.ops) > 0 {
				m.opIndex = (m.opIndex + 1) % len(m.ops)
			}
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			return m, m.runOperation()

		case key.Matches(msg, m.keys.Play):
			return m, m.togglePlay()

		case key.Matches(msg, m.keys.Step):
			m.playing = false
			if p := m.sess.Player(); p != nil && !p.Step() {
				m.setMessage("Trace finished", false)
			}
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.playing = false
			if p := m.sess.Player(); p != nil {
				p.Reset()
			}
			return m, nil

		case key.Matches(msg, m.keys.Faster):
			m.adjustSpeed(10)
			return m, nil

		case key.Matches(msg, m.keys.Slower):
			m.adjustSpeed(-10)
			return m, nil

		case key.Matches(msg, m.keys.Sample):
			m.loadKind(m.kinds[m.kindIndex])
			return m, nil
		}
	}

	m.args, cmd = m.args.Update(msg)
	return m, cmd
}

func (m *vizModel) setMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

func (m *vizModel) switchKind(delta int) {
	n := len(m.kinds)
	m.kindIndex = (m.kindIndex + delta + n) % n
	m.loadKind(m.kinds[m.kindIndex])
}

// loadKind replaces the session structure with a fresh sample of kind.
func (m *vizModel) loadKind(kind model.Kind) {
	m.playing = false
	if err := m.sess.Load(session.CreateRequest{Kind: string(kind), Sample: true}); err != nil {
		m.setMessage(model.NoticeOf(err), true)
		return
	}
	m.ops = m.sess.Operations()
	m.opIndex = 0
	m.setMessage(fmt.Sprintf("Loaded sample %s", kind), false)
}

func (m *vizModel) adjustSpeed(delta int) {
	speed := min(max(m.sess.Speed()+delta, player.MinSpeed), player.MaxSpeed)
	if err := m.sess.SetSpeed(speed); err != nil {
		m.setMessage(model.NoticeOf(err), true)
		return
	}
	m.setMessage(fmt.Sprintf("Speed %d (%s per frame)", speed, m.sess.Delay()), false)
}

// runOperation applies the selected operation and starts playing its
// trace from the first frame.
func (m *vizModel) runOperation() tea.Cmd {
	if len(m.ops) == 0 {
		return nil
	}
	spec := m.ops[m.opIndex]
	req, err := buildRequest(spec, m.args.Value())
	if err != nil {
		m.setMessage(err.Error(), true)
		return nil
	}

	res, err := m.sess.Apply(req)
	switch {
	case res == nil:
		m.setMessage(model.NoticeOf(err), true)
		return nil
	case res.Outcome == session.OutcomeRejected:
		m.setMessage(res.Notice, true)
		return nil
	case res.Outcome == session.OutcomeDeclined:
		m.setMessage(res.Notice, true)
	default:
		m.setMessage(fmt.Sprintf("%s: %d frames", spec.Name, res.Trace.Len()), false)
	}
	m.args.Reset()
	m.playing = false
	return m.togglePlay()
}

func (m *vizModel) togglePlay() tea.Cmd {
	p := m.sess.Player()
	if p == nil {
		m.setMessage("Run an operation first", true)
		return nil
	}
	if m.playing {
		m.playing = false
		return nil
	}
	if p.Cursor() >= p.Len() {
		p.Reset()
	}
	m.playing = true
	return m.advance()
}

// advance renders the next frame and schedules the one after it.
func (m *vizModel) advance() tea.Cmd {
	p := m.sess.Player()
	if p == nil || !p.Step() || p.State() == player.StateCompleted {
		m.playing = false
		return nil
	}
	return tickCmd(m.sess.Delay())
}

// buildRequest maps whitespace separated arguments onto the parameters
// the operation needs, in order.
func buildRequest(spec algorithms.OperationSpec, input string) (session.Request, error) {
	fields := strings.Fields(input)
	if len(fields) < len(spec.Needs) {
		return session.Request{}, fmt.Errorf("%s needs %s", spec.Name, strings.Join(spec.Needs, ", "))
	}

	req := session.Request{Operation: spec.Name}
	for i, need := range spec.Needs {
		arg := fields[i]
		switch need {
		case algorithms.ParamItem:
			req.Item = arg
		case algorithms.ParamVertex:
			req.Vertex = arg
		case algorithms.ParamFrom:
			req.From = arg
		case algorithms.ParamTo:
			req.To = arg
		default:
			n, err := strconv.Atoi(arg)
			if err != nil {
				return session.Request{}, fmt.Errorf("%s must be a number, got %q", need, arg)
			}
			switch need {
			case algorithms.ParamValue:
				req.Value = &n
			case algorithms.ParamKey:
				req.Key = &n
			case algorithms.ParamPosition:
				req.Position = &n
			}
		}
	}
	return req, nil
}

func (m vizModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Algorithm Visualizer"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		structureBoxStyle.Render(m.renderStructure()),
		m.renderOperations(),
	)
	s.WriteString(contentStyle.Render(body))
	s.WriteString("\n\n")
	s.WriteString(contentStyle.Render(m.args.View()))

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m vizModel) renderTabs() string {
	tabs := make([]string, len(m.kinds))
	for i, k := range m.kinds {
		if i == m.kindIndex {
			tabs[i] = activeTabStyle.Render(string(k))
		} else {
			tabs[i] = inactiveTabStyle.Render(string(k))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// shownFrame is the frame on display, if a trace has been run.
func (m vizModel) shownFrame() (trace.Frame, *player.Player, bool) {
	p := m.sess.Player()
	if p == nil {
		return trace.Frame{}, nil, false
	}
	f, ok := p.Current()
	return f, p, ok
}

func (m vizModel) renderStructure() string {
	var s strings.Builder

	elems := m.sess.Structure().Elements()
	status := "no trace"
	f, p, ok := m.shownFrame()
	if ok {
		elems = f.Elements()
		status = fmt.Sprintf("%s  frame %d/%d  speed %d", p.State(), p.Cursor(), p.Len(), m.sess.Speed())
	}

	s.WriteString(headerStyle.Render(string(m.sess.Kind())))
	s.WriteString("\n\n")
	if len(elems) == 0 {
		s.WriteString("(empty)")
	} else {
		boxes := make([]string, len(elems))
		for i, e := range elems {
			boxes[i] = elementBox(e)
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	s.WriteString("\n\n")
	if ok {
		if msg, has := f.Message(); has {
			s.WriteString(msg + "\n")
		}
	}
	s.WriteString(status)
	return s.String()
}

func (m vizModel) renderOperations() string {
	var ops strings.Builder
	blocked := m.sess.Unavailable()
	for i, spec := range m.ops {
		line := spec.Name
		if len(spec.Needs) > 0 {
			line += " <" + strings.Join(spec.Needs, "> <") + ">"
		}
		reason, isBlocked := blocked[spec.Name]
		switch {
		case i == m.opIndex:
			ops.WriteString(activeTabStyle.Render(line))
		case isBlocked:
			ops.WriteString("  " + helpStyle.Render(line))
		default:
			ops.WriteString("  " + line)
		}
		if isBlocked {
			ops.WriteString(helpStyle.Render(" (" + reason + ")"))
		}
		ops.WriteString("\n")
	}

	var listing strings.Builder
	if len(m.ops) > 0 {
		l := m.ops[m.opIndex].Listing
		highlighted := -1
		if f, p, ok := m.shownFrame(); ok && p.Trace().Operation() == m.ops[m.opIndex].Name {
			if line, has := f.HighlightedLine(); has {
				highlighted = line
			}
		}
		for i, line := range l.Lines {
			if i == highlighted {
				listing.WriteString(activeLineStyle.Render(line))
			} else {
				listing.WriteString(line)
			}
			listing.WriteString("\n")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ops.String(),
		listingBoxStyle.Render(strings.TrimRight(listing.String(), "\n")),
	)
}
