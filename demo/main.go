package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"techatlas/demo/client"
	"techatlas/types"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginTop(1).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

// Messages for the tea program
type analysisStartedMsg struct {
	taskID string
	err    error
}

type statusMsg struct {
	status *client.StatusResponse
	err    error
}

type pollTickMsg struct{}

// Model represents the demo state
type model struct {
	api      *client.Client
	request  types.AnalysisRequest
	state    string // "idle", "submitting", "polling", "complete", "error"
	taskID   string
	progress int
	message  string
	result   *types.AnalysisResult
	err      error
	logs     []string
}

func initialModel(api *client.Client, req types.AnalysisRequest) model {
	return model{api: api, request: req, state: "idle"}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "a", "A":
			if m.state == "idle" {
				m.state = "submitting"
				m.addLog("Submitting analysis request...")
				return m, startAnalysis(m.api, m.request)
			}
		}

	case analysisStartedMsg:
		if msg.err != nil {
			m.state = "error"
			m.err = msg.err
			return m, nil
		}
		m.taskID = msg.taskID
		m.state = "polling"
		m.addLog(fmt.Sprintf("Task accepted: %s", msg.taskID))
		return m, pollTick()

	case pollTickMsg:
		if m.state != "polling" {
			return m, nil
		}
		return m, pollStatus(m.api, m.taskID)

	case statusMsg:
		if msg.err != nil {
			m.state = "error"
			m.err = msg.err
			return m, nil
		}
		m.progress = msg.status.Progress
		if msg.status.Message != m.message {
			m.message = msg.status.Message
			m.addLog(msg.status.Message)
		}
		switch msg.status.Status {
		case "completed":
			m.state = "complete"
			m.result = msg.status.Results
			return m, nil
		case "failed":
			m.state = "error"
			m.err = fmt.Errorf("%s", msg.status.Error)
			return m, nil
		}
		return m, pollTick()
	}

	return m, nil
}

func (m *model) addLog(logMsg string) {
	m.logs = append(m.logs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), logMsg))
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🌐 TechAtlas Demo"))
	b.WriteString("\n\n")

	target := m.request.Country
	if m.request.Comparison() {
		target += " vs " + m.request.Country2
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("Request: %s / %s", target, m.request.Domain)))
	b.WriteString("\n\n")

	switch m.state {
	case "idle":
		b.WriteString(highlightStyle.Render("👋 Ready to start!"))
		b.WriteString("\n\n")
		b.WriteString(infoStyle.Render("Press 'a' to submit the analysis"))
	case "submitting":
		b.WriteString(statusStyle.Render("📤 Submitting analysis request..."))
	case "polling":
		b.WriteString(statusStyle.Render(fmt.Sprintf("⏳ %s (%d%%)", m.message, m.progress)))
	case "complete":
		b.WriteString(highlightStyle.Render("✅ COMPLETE"))
	case "error":
		b.WriteString(errorStyle.Render(fmt.Sprintf("❌ Error: %v", m.err)))
	}
	b.WriteString("\n\n")

	if len(m.logs) > 0 {
		b.WriteString(infoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.logs {
			b.WriteString(infoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.state == "complete" && m.result != nil {
		b.WriteString(boxStyle.Render(formatResult(m.result)))
		b.WriteString("\n\n")
	}

	if m.state == "idle" {
		b.WriteString(infoStyle.Render("Press 'a' to start | Press 'q' or Ctrl+C to quit"))
	} else {
		b.WriteString(infoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}
	return b.String()
}

func formatResult(result *types.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(highlightStyle.Render("Analysis Result"))
	b.WriteString("\n\n")

	for _, country := range result.Countries {
		b.WriteString(fmt.Sprintf("%s\n", statusStyle.Render(country)))
		for _, s := range result.Scores[country] {
			b.WriteString(fmt.Sprintf("  %-12s %.1f/10\n", s.Category, s.NormalizedScore))
		}
		if du, ok := result.DualUse[country]; ok {
			b.WriteString(fmt.Sprintf("  Dual-use risk: %s\n", du.RiskLevel))
		}
		b.WriteString("\n")
	}

	overview := result.OverallAnalysis
	if len(overview) > 400 {
		overview = overview[:400] + "..."
	}
	b.WriteString(infoStyle.Render(overview))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Confidence: %s\n", result.DataQuality.Confidence))
	if result.Document != nil {
		b.WriteString(fmt.Sprintf("Report: %s\n", result.Document.Filename))
	}
	return b.String()
}

// Tea commands
func startAnalysis(api *client.Client, req types.AnalysisRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.StartAnalysis(req)
		if err != nil {
			return analysisStartedMsg{err: err}
		}
		return analysisStartedMsg{taskID: resp.TaskID}
	}
}

func pollStatus(api *client.Client, taskID string) tea.Cmd {
	return func() tea.Msg {
		status, err := api.GetStatus(taskID)
		return statusMsg{status: status, err: err}
	}
}

func pollTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func main() {
	country := flag.String("country", "Japan", "Country to analyze")
	country2 := flag.String("country2", "South Korea", "Second country for comparison (empty for single)")
	domain := flag.String("domain", "artificial intelligence", "Technology domain")
	flag.Parse()

	_ = godotenv.Load()

	api := client.NewClient(client.GetEnvOrDefault("TECHATLAS_URL", "http://localhost:8080"))
	req := types.AnalysisRequest{
		Country:  *country,
		Country2: *country2,
		Domain:   *domain,
	}

	if _, err := tea.NewProgram(initialModel(api, req)).Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
