package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	enter     key.Binding
	esc       key.Binding
	nextField key.Binding
	prevField key.Binding
	quit      key.Binding
	google    key.Binding
	reset     key.Binding
	signUp    key.Binding
	export    key.Binding
	download  key.Binding
	refresh   key.Binding
	version   key.Binding
	yes       key.Binding
	no        key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	left:      key.NewBinding(key.WithKeys("left")),
	right:     key.NewBinding(key.WithKeys("right", " ")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	nextField: key.NewBinding(key.WithKeys("tab", "down")),
	prevField: key.NewBinding(key.WithKeys("shift+tab", "up")),
	quit:      key.NewBinding(key.WithKeys("ctrl+c")),
	google:    key.NewBinding(key.WithKeys("ctrl+g")),
	reset:     key.NewBinding(key.WithKeys("ctrl+r")),
	signUp:    key.NewBinding(key.WithKeys("ctrl+n")),
	export:    key.NewBinding(key.WithKeys("e", "enter")),
	download:  key.NewBinding(key.WithKeys("d")),
	refresh:   key.NewBinding(key.WithKeys("r")),
	version:   key.NewBinding(key.WithKeys("v")),
	yes:       key.NewBinding(key.WithKeys("y", "s")),
	no:        key.NewBinding(key.WithKeys("n")),
}

type navKeyMap struct {
	home     key.Binding
	register key.Binding
	reports  key.Binding
	logout   key.Binding
}

var formNavKeys = navKeyMap{
	home:     key.NewBinding(key.WithKeys("f1")),
	register: key.NewBinding(key.WithKeys("f2")),
	reports:  key.NewBinding(key.WithKeys("f3")),
	logout:   key.NewBinding(key.WithKeys("f4")),
}

// Screens without text inputs also accept the digits.
var listNavKeys = navKeyMap{
	home:     key.NewBinding(key.WithKeys("f1", "1")),
	register: key.NewBinding(key.WithKeys("f2", "2")),
	reports:  key.NewBinding(key.WithKeys("f3", "3")),
	logout:   key.NewBinding(key.WithKeys("f4", "4")),
}
