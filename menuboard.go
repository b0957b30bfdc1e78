// Package menuboard collects coffee-chain drink menus and answers questions
// about them. Brand websites are scraped into per-brand JSON files, the
// records are indexed for semantic retrieval, and a kiosk UI lets users
// browse the menu or chat with an assistant grounded in the indexed records.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/, gemini/).
package menuboard
