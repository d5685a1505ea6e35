package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Header         lipgloss.Style
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	MessageText    lipgloss.Style
	SpeakingMark   lipgloss.Style
	Interim        lipgloss.Style
	Status         lipgloss.Style
	StatusActive   lipgloss.Style
	Input          lipgloss.Style
	InputDisabled  lipgloss.Style
	Help           lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1),
		UserLabel:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		AssistantLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		MessageText:    lipgloss.NewStyle().PaddingLeft(2),
		SpeakingMark:   lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Interim:        lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120")),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		InputDisabled: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}
