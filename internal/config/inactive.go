package config

// DefaultInactiveTitles returns the focused-window titles that mean nobody is
// at the keyboard. Seeing one of these suppresses recording entirely; the
// open entry, if any, is closed by the next active sample instead.
func DefaultInactiveTitles() []string {
	return []string{
		// X11 / common Linux lockers
		"i3lock",
		"xscreensaver",
		"Lock Screen",
		"Screen Locker",
		"swaylock",

		// GNOME / KDE
		"gnome-screensaver",
		"kscreenlocker_greet",

		// macOS
		"loginwindow",
		"ScreenSaverEngine",

		// Display managers
		"LightDM",
		"GDM",
	}
}
