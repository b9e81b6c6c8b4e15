// Package core provides the shared value types for the rendering engine:
// colors, styles, cells, and screen geometry. It sits below every other
// package and breaks import cycles between the widget and backend layers.
package core
