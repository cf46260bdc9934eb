// Package scraper fetches event listing pages and renders them as
// markdown-like text for the ingestion gatherers.
//
// Two renderers implement the Renderer interface. HTTP performs a plain GET
// and converts the HTML with goquery. Chromium drives a headless browser
// through chromedp, for listings assembled by client-side scripts. Both
// produce the same text shape: one block per line, headings prefixed with
// '#', and links written as [text](href).
package scraper
