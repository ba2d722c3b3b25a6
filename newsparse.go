// Package newsparse turns news article markup into ordered, typed content
// blocks. Site adapters fetch a feed, locate the article body and hand it to
// the extraction engine, which walks the body and emits text, headers,
// images, quotes, links and videos while suppressing noise and text already
// covered by the article summary.
//
// This package contains domain types, the extraction engine and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// gofeed/, http/).
package newsparse
