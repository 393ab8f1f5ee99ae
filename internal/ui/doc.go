// Package ui holds the shared terminal styling for netuse's one-shot
// commands (doctor, init) and the color constants the dashboard palette
// maps its classes onto.
//
// Colors are ANSI codes rather than hex values so output stays readable on
// minimal consoles:
//
//	ColorSuccess   (green)  - passing checks, good readings
//	ColorError     (red)    - failures, critical readings
//	ColorWarning   (yellow) - warnings
//	ColorInfo      (cyan)   - titles
//	ColorSecondary (blue)   - notices
//	ColorMuted     (gray)   - suggestions, unknown readings
//
// Use DisableColors() for --no-color.
package ui
