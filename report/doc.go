// SPDX-License-Identifier: MIT

// Package report renders a probe.Run for people: plain-text tables, a PNG
// bar chart, an HTML page of interactive charts and a closing environment
// block. Nothing here is meant to be parsed back.
package report
