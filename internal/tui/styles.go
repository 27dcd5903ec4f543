package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorBlue      = lipgloss.Color("#3776AB")
	colorYellow    = lipgloss.Color("#FFD43B")
	colorRed       = lipgloss.Color("#FF5F5F")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(colorBlue)

	paneTitleStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	historyItemStyle = lipgloss.NewStyle().
				Foreground(colorLightGray).
				PaddingLeft(2)

	historyItemSelectedStyle = lipgloss.NewStyle().
					Foreground(colorYellow).
					Bold(true).
					PaddingLeft(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true)
)

const logo = `┏━┓╻ ╻┏━┓┏━╸┏━┓╻┏┓ ┏━╸
┣━┛┗┳┛┗━┓┃  ┣┳┛┃┣┻┓┣╸
╹   ╹ ┗━┛┗━╸╹┗╸╹┗━┛┗━╸`
