// Package cli provides the terminal output components for pplaces.
//
// The package uses [Bubbletea] for the scan progress display and [Lipgloss]
// for styling and tables. Interactive components follow the standard
// Bubbletea Model-View-Update (MVU) architecture; static output (tables,
// path lists) is plain rendering with no user interaction.
//
// Interactive output is only used when stderr is a terminal; callers decide
// that and fall back to plain logging otherwise.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
