// Package gradscout discovers funded graduate-study opportunities.
// It searches the web for candidate pages, extracts their readable content,
// scores each page against a fixed vocabulary of funding, test-waiver and
// deadline signals, and produces a ranked, deduplicated result set.
//
// This package contains domain types, interfaces and the pure scoring
// pipeline following Ben Johnson's Standard Package Layout. Implementations
// that depend on third-party libraries live in subdirectories named after
// their primary dependency (e.g., readability/, sqlite/, duckduckgo/).
package gradscout
