// Package clipprune prunes web pages down to their main article before the
// page is handed to a clipping tool. An ordered table of site rules decides
// which subtree of the document is the article; everything around it
// (navigation, ads, related links, scripts) is deleted in place, and a fixed
// post-pass removes hidden elements, embedded scripts and event handlers.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, douceur/).
package clipprune
