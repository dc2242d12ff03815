package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inovacc/pplaces/internal/core"
	"github.com/inovacc/pplaces/internal/model"
)

// ScanModel shows a spinner with live counters while a scan runs
type ScanModel struct {
	spinner spinner.Model
	root    string
	found   int
	fetched int
	current string
	done    bool
	err     error
	result  *core.ScanResult
	run     func() (*core.ScanResult, error)
	cancel  context.CancelFunc
}

type repoFoundMsg struct {
	path string
}

type repoFetchedMsg struct {
	path string
}

type scanCompleteMsg struct {
	result *core.ScanResult
	err    error
}

// NewScanModel creates a scan model; run performs the scan and cancel
// aborts it when the user quits.
func NewScanModel(root string, run func() (*core.ScanResult, error), cancel context.CancelFunc) ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return ScanModel{
		spinner: s,
		root:    root,
		run:     run,
		cancel:  cancel,
	}
}

func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scan)
}

func (m ScanModel) scan() tea.Msg {
	result, err := m.run()
	return scanCompleteMsg{result: result, err: err}
}

func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}

			m.done = true
			m.err = context.Canceled

			return m, tea.Quit
		}

	case repoFoundMsg:
		m.found++
		m.current = msg.path

	case repoFetchedMsg:
		m.fetched++
		m.current = msg.path

	case scanCompleteMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err

		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ScanModel) View() string {
	if m.done {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("  ✗ Scan failed: %v\n", m.err))
		}

		return successStyle.Render(fmt.Sprintf("  ✓ Scanned %s: %d repositories\n", m.root, m.fetched))
	}

	return fmt.Sprintf("  %s Scanning %s  found %d, read %d\n  %s\n",
		m.spinner.View(), urlStyle.Render(m.root), m.found, m.fetched, pathStyle.Render(m.current))
}

// Result returns the scan result and error once the model is done.
func (m ScanModel) Result() (*core.ScanResult, error) {
	return m.result, m.err
}

// RunScan runs core.Scan behind a spinner written to out. Progress callbacks
// already set on opts are replaced.
func RunScan(ctx context.Context, opts core.ScanOptions, cache model.Cache, out io.Writer) (*core.ScanResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var p *tea.Program

	opts.OnFound = func(path string) { p.Send(repoFoundMsg{path: path}) }
	opts.OnFetched = func(repo model.Repository) { p.Send(repoFetchedMsg{path: repo.Path}) }

	m := NewScanModel(opts.Root, func() (*core.ScanResult, error) {
		return core.Scan(ctx, opts, cache)
	}, cancel)

	p = tea.NewProgram(m, tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("scan display: %w", err)
	}

	return final.(ScanModel).Result()
}
