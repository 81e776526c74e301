// Package rfqscrape turns rendered RFQ (Request for Quotation) listing
// pages into a deduplicated table of structured records. It locates
// candidate record containers in a page's DOM, extracts typed fields
// using layered heuristics (structural lookup first, regex patterns as
// fallback), filters out non-record noise, and deduplicates records
// across pages by their detail URL.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// rod/, sqlite/).
package rfqscrape
